package submqueue

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	cmd := SubmitExerciseCommand{
		CorrelationID: uuid.NewString(),
		ConnectionID:  "conn-3",
		GroupID:       uuid.New(),
		ExerciseID:    uuid.New(),
		CompetitionID: uuid.New(),
		Code:          strings.Repeat("for i in range(10):\n    print(i)\n", 500),
		Language:      "python",
		SubmittedAt:   time.Now().UTC().Truncate(time.Second),
	}

	body, err := encodeBody(cmd)
	require.NoError(t, err)
	assert.Less(t, len(body), len(cmd.Code), "repetitive code should compress well")

	var decoded SubmitExerciseCommand
	require.NoError(t, decodeBody(body, &decoded))
	assert.Equal(t, cmd, decoded)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	var cmd SubmitExerciseCommand
	assert.Error(t, decodeBody("not base64 at all!!!", &cmd))
	assert.Error(t, decodeBody("aGVsbG8gd29ybGQ=", &cmd)) // valid base64, not zstd
}
