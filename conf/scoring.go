package conf

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// ScoringPolicy holds the configurable scoring constants. The two original
// intake paths disagreed on the per-solve award, so the value is explicit
// configuration rather than a hard-coded constant.
type ScoringPolicy struct {
	// AwardPoints is the number of points a group receives for the first
	// accepted submission per exercise.
	AwardPoints int `toml:"award_points"`
}

func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{AwardPoints: 1}
}

// ReadScoringPolicy loads the scoring policy from a TOML file, falling back
// to defaults when the file is absent. The SCORING_AWARD_POINTS env var
// overrides the file value.
func ReadScoringPolicy(path string) (ScoringPolicy, error) {
	policy := DefaultScoringPolicy()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := toml.Unmarshal(data, &policy); err != nil {
			return policy, fmt.Errorf("failed to parse scoring policy file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return policy, fmt.Errorf("failed to read scoring policy file %s: %w", path, err)
	}

	if env := os.Getenv("SCORING_AWARD_POINTS"); env != "" {
		points, err := strconv.Atoi(env)
		if err != nil {
			return policy, fmt.Errorf("invalid SCORING_AWARD_POINTS value %q: %w", env, err)
		}
		policy.AwardPoints = points
	}

	if policy.AwardPoints <= 0 {
		return policy, fmt.Errorf("award points must be positive, got %d", policy.AwardPoints)
	}

	return policy, nil
}
