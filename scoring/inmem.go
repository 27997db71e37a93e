package scoring

import (
	"context"
	"fmt"
	"sync"

	"github.com/codeclash/backend/contest"
	"github.com/google/uuid"
)

type regKey struct {
	competitionID uuid.UUID
	groupID       uuid.UUID
}

type solveKey struct {
	competitionID uuid.UUID
	groupID       uuid.UUID
	exerciseID    uuid.UUID
}

// InMemStore keeps everything in maps behind one mutex. UpdateScore holds
// the mutex for the whole callback, which gives the same serialization the
// Postgres store gets from its competition-scoped transaction.
type InMemStore struct {
	mu sync.Mutex

	competitions  map[uuid.UUID]contest.Competition
	exercises     map[uuid.UUID]contest.Exercise
	registrations map[regKey]contest.GroupRegistration
	submissions   []contest.Submission
	entries       map[regKey]contest.RankingEntry
	solved        map[solveKey]bool
	audit         []AuditEntry
}

func NewInMemStore() *InMemStore {
	return &InMemStore{
		competitions:  make(map[uuid.UUID]contest.Competition),
		exercises:     make(map[uuid.UUID]contest.Exercise),
		registrations: make(map[regKey]contest.GroupRegistration),
		entries:       make(map[regKey]contest.RankingEntry),
		solved:        make(map[solveKey]bool),
	}
}

func (s *InMemStore) PutCompetition(comp contest.Competition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.competitions[comp.ID] = comp
}

func (s *InMemStore) PutExercise(ex contest.Exercise) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exercises[ex.ID] = ex
}

func (s *InMemStore) PutRegistration(reg contest.GroupRegistration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registrations[regKey{reg.CompetitionID, reg.GroupID}] = reg
}

func (s *InMemStore) Competition(ctx context.Context, id uuid.UUID) (*contest.Competition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comp, ok := s.competitions[id]
	if !ok {
		return nil, fmt.Errorf("competition %s: %w", id, ErrNotFound)
	}
	return &comp, nil
}

func (s *InMemStore) Exercise(ctx context.Context, id uuid.UUID) (*contest.Exercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ex, ok := s.exercises[id]
	if !ok {
		return nil, fmt.Errorf("exercise %s: %w", id, ErrNotFound)
	}
	return &ex, nil
}

func (s *InMemStore) Registration(ctx context.Context, competitionID, groupID uuid.UUID) (*contest.GroupRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.registrations[regKey{competitionID, groupID}]
	if !ok {
		return nil, fmt.Errorf("registration of group %s: %w", groupID, ErrNotFound)
	}
	return &reg, nil
}

func (s *InMemStore) SaveSubmission(ctx context.Context, subm *contest.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions = append(s.submissions, *subm)
	return nil
}

func (s *InMemStore) Submissions() []contest.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]contest.Submission, len(s.submissions))
	copy(out, s.submissions)
	return out
}

func (s *InMemStore) RankingEntries(ctx context.Context, competitionID uuid.UUID) ([]contest.RankingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entriesLocked(competitionID), nil
}

func (s *InMemStore) RankingEntryOf(ctx context.Context, competitionID, groupID uuid.UUID) (*contest.RankingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[regKey{competitionID, groupID}]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (s *InMemStore) SolvedCount(ctx context.Context, competitionID, groupID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.solvedCountLocked(competitionID, groupID), nil
}

func (s *InMemStore) UpdateScore(ctx context.Context, competitionID uuid.UUID, fn func(tx ScoreTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&inMemScoreTx{store: s})
}

func (s *InMemStore) SaveAudit(ctx context.Context, entry AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = append(s.audit, entry)
	return nil
}

func (s *InMemStore) AuditEntries() []AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]AuditEntry, len(s.audit))
	copy(out, s.audit)
	return out
}

func (s *InMemStore) entriesLocked(competitionID uuid.UUID) []contest.RankingEntry {
	var out []contest.RankingEntry
	for key, entry := range s.entries {
		if key.competitionID == competitionID {
			out = append(out, entry)
		}
	}
	return out
}

func (s *InMemStore) solvedCountLocked(competitionID, groupID uuid.UUID) int {
	count := 0
	for key := range s.solved {
		if key.competitionID == competitionID && key.groupID == groupID {
			count++
		}
	}
	return count
}

// inMemScoreTx operates on the store while UpdateScore holds the mutex,
// its methods must not lock again.
type inMemScoreTx struct {
	store *InMemStore
}

func (tx *inMemScoreTx) ClaimFirstAcceptance(ctx context.Context, competitionID, groupID, exerciseID uuid.UUID) (bool, error) {
	key := solveKey{competitionID, groupID, exerciseID}
	if tx.store.solved[key] {
		return false, nil
	}
	tx.store.solved[key] = true
	return true, nil
}

func (tx *inMemScoreTx) RankingEntries(ctx context.Context, competitionID uuid.UUID) ([]contest.RankingEntry, error) {
	return tx.store.entriesLocked(competitionID), nil
}

func (tx *inMemScoreTx) SaveRankingEntries(ctx context.Context, entries []contest.RankingEntry) error {
	for _, entry := range entries {
		tx.store.entries[regKey{entry.CompetitionID, entry.GroupID}] = entry
	}
	return nil
}

func (tx *inMemScoreTx) SolvedCount(ctx context.Context, competitionID, groupID uuid.UUID) (int, error) {
	return tx.store.solvedCountLocked(competitionID, groupID), nil
}
