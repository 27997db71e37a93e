package contest

import (
	"time"

	"github.com/google/uuid"
)

// GroupRegistration links a group to a competition. At most one registration
// may exist per (group, competition) pair; the store enforces the uniqueness.
type GroupRegistration struct {
	ID            uuid.UUID
	GroupID       uuid.UUID
	CompetitionID uuid.UUID

	// Blocked disqualifies the group administratively without
	// deleting its submission history.
	Blocked bool

	CreatedAt time.Time
}

func NewGroupRegistration(groupID, competitionID uuid.UUID) *GroupRegistration {
	return &GroupRegistration{
		ID:            uuid.New(),
		GroupID:       groupID,
		CompetitionID: competitionID,
		CreatedAt:     time.Now(),
	}
}

func (r *GroupRegistration) Block() {
	r.Blocked = true
}
