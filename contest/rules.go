package contest

import (
	"net/http"
	"time"

	"github.com/codeclash/backend/srvcerror"
)

// Rule is a single business invariant. Entities check their rules on every
// mutation and reject the mutation when a rule is broken.
type Rule interface {
	IsBroken() bool
	Message() string
}

const ErrCodeRuleViolation = "rule_violation"

func ErrRuleViolation(msg string) *srvcerror.Error {
	return srvcerror.New(ErrCodeRuleViolation, msg).
		SetHttpStatusCode(http.StatusUnprocessableEntity)
}

// CheckRules returns a rule violation error for the first broken rule,
// or nil when all rules hold.
func CheckRules(rules ...Rule) *srvcerror.Error {
	for _, rule := range rules {
		if rule.IsBroken() {
			return ErrRuleViolation(rule.Message())
		}
	}
	return nil
}

type PointsNotNegative struct {
	Points int
}

func (r PointsNotNegative) IsBroken() bool {
	return r.Points < 0
}

func (r PointsNotNegative) Message() string {
	return "points cannot be negative"
}

type PenaltyNotNegative struct {
	Penalty time.Duration
}

func (r PenaltyNotNegative) IsBroken() bool {
	return r.Penalty < 0
}

func (r PenaltyNotNegative) Message() string {
	return "penalty cannot be negative"
}

type RankOrderPositive struct {
	RankOrder int
}

func (r RankOrderPositive) IsBroken() bool {
	return r.RankOrder <= 0
}

func (r RankOrderPositive) Message() string {
	return "rank order must be positive"
}

type CodeNotEmpty struct {
	Code string
}

func (r CodeNotEmpty) IsBroken() bool {
	return r.Code == ""
}

func (r CodeNotEmpty) Message() string {
	return "submission code cannot be empty"
}

type InscriptionWindowValid struct {
	Start time.Time
	End   time.Time
}

func (r InscriptionWindowValid) IsBroken() bool {
	return r.End.Before(r.Start)
}

func (r InscriptionWindowValid) Message() string {
	return "end of inscription cannot precede start of inscription"
}
