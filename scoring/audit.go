package scoring

import (
	"time"

	"github.com/google/uuid"
)

const ActionSubmitExercise = "submit_exercise"

// AuditEntry records who triggered a scoring action and from where. The
// asynchronous path uses "worker" as the IP.
type AuditEntry struct {
	ID            uuid.UUID
	Actor         string
	IP            string
	Action        string
	GroupID       uuid.UUID
	CompetitionID uuid.UUID
	CreatedAt     time.Time
}

func NewAuditEntry(actor, ip, action string, groupID, competitionID uuid.UUID) AuditEntry {
	return AuditEntry{
		ID:            uuid.New(),
		Actor:         actor,
		IP:            ip,
		Action:        action,
		GroupID:       groupID,
		CompetitionID: competitionID,
		CreatedAt:     time.Now(),
	}
}
