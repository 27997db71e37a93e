package scoring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/codeclash/backend/contest"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore is the Postgres persistence gateway. Uniqueness constraints
// backing the engine's invariants:
//
//	group_registrations (competition_id, group_id) unique
//	ranking_entries     (competition_id, group_id) unique
//	solved_exercises    (competition_id, group_id, exercise_id) unique
type PgStore struct {
	pool *pgxpool.Pool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

func (s *PgStore) Competition(ctx context.Context, id uuid.UUID) (*contest.Competition, error) {
	query := `
		SELECT id, name, status,
			inscription_start, inscription_end, start_at, end_at,
			block_submissions_at, stop_ranking_at,
			submission_penalty_secs,
			max_members, max_exercises, max_submission_size,
			created_at
		FROM competitions
		WHERE id = $1
	`
	var comp contest.Competition
	var penaltySecs int64
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&comp.ID,
		&comp.Name,
		&comp.Status,
		&comp.InscriptionStart,
		&comp.InscriptionEnd,
		&comp.StartAt,
		&comp.EndAt,
		&comp.BlockSubmissionsAt,
		&comp.StopRankingAt,
		&penaltySecs,
		&comp.MaxMembers,
		&comp.MaxExercises,
		&comp.MaxSubmissionSize,
		&comp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("competition %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query competition: %w", err)
	}
	comp.SubmissionPenalty = time.Duration(penaltySecs) * time.Second
	return &comp, nil
}

func (s *PgStore) Exercise(ctx context.Context, id uuid.UUID) (*contest.Exercise, error) {
	query := `
		SELECT id, competition_id, title, description, estimated_time_secs, judge_uuid
		FROM exercises
		WHERE id = $1
	`
	var ex contest.Exercise
	var estSecs int64
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&ex.ID,
		&ex.CompetitionID,
		&ex.Title,
		&ex.Description,
		&estSecs,
		&ex.JudgeUUID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("exercise %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query exercise: %w", err)
	}
	ex.EstimatedTime = time.Duration(estSecs) * time.Second
	return &ex, nil
}

func (s *PgStore) Registration(ctx context.Context, competitionID, groupID uuid.UUID) (*contest.GroupRegistration, error) {
	query := `
		SELECT id, group_id, competition_id, blocked, created_at
		FROM group_registrations
		WHERE competition_id = $1 AND group_id = $2
	`
	var reg contest.GroupRegistration
	err := s.pool.QueryRow(ctx, query, competitionID, groupID).Scan(
		&reg.ID,
		&reg.GroupID,
		&reg.CompetitionID,
		&reg.Blocked,
		&reg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("registration of group %s: %w", groupID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query registration: %w", err)
	}
	return &reg, nil
}

func (s *PgStore) SaveSubmission(ctx context.Context, subm *contest.Submission) error {
	query := `
		INSERT INTO submissions (
			id, exercise_id, group_id, competition_id,
			code, language, submitted_at,
			verdict, accepted, exec_time_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.pool.Exec(ctx, query,
		subm.ID,
		subm.ExerciseID,
		subm.GroupID,
		subm.CompetitionID,
		subm.Code,
		subm.Language,
		subm.SubmittedAt,
		subm.Verdict,
		subm.Accepted,
		subm.ExecTimeMs,
	)
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

func (s *PgStore) RankingEntries(ctx context.Context, competitionID uuid.UUID) ([]contest.RankingEntry, error) {
	return queryRankingEntries(ctx, s.pool, competitionID, false)
}

func (s *PgStore) RankingEntryOf(ctx context.Context, competitionID, groupID uuid.UUID) (*contest.RankingEntry, error) {
	query := `
		SELECT id, competition_id, group_id, points, penalty_secs, rank_order, created_at
		FROM ranking_entries
		WHERE competition_id = $1 AND group_id = $2
	`
	entry, err := scanRankingEntry(s.pool.QueryRow(ctx, query, competitionID, groupID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query ranking entry: %w", err)
	}
	return entry, nil
}

func (s *PgStore) SolvedCount(ctx context.Context, competitionID, groupID uuid.UUID) (int, error) {
	return querySolvedCount(ctx, s.pool, competitionID, groupID)
}

// UpdateScore wraps fn in a transaction that holds the competition row
// lock for its whole duration, so concurrent recomputes for one
// competition serialize and readers never see a half-assigned rank order.
func (s *PgStore) UpdateScore(ctx context.Context, competitionID uuid.UUID, fn func(tx ScoreTx) error) error {
	pgtx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer pgtx.Rollback(ctx)

	// Locking ranking_entries rows is not enough: in a fresh competition
	// there are no rows yet, and two first-solves by different groups
	// would each see an empty leaderboard and both commit rank 1.
	lockQuery := `SELECT id FROM competitions WHERE id = $1 FOR UPDATE`
	if _, err := pgtx.Exec(ctx, lockQuery, competitionID); err != nil {
		return fmt.Errorf("failed to lock competition: %w", err)
	}

	if err := fn(&pgScoreTx{tx: pgtx}); err != nil {
		return err
	}

	if err := pgtx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit score update: %w", err)
	}
	return nil
}

func (s *PgStore) SaveAudit(ctx context.Context, entry AuditEntry) error {
	query := `
		INSERT INTO audit_log (id, actor, ip, action, group_id, competition_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.pool.Exec(ctx, query,
		entry.ID,
		entry.Actor,
		entry.IP,
		entry.Action,
		entry.GroupID,
		entry.CompetitionID,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

type pgScoreTx struct {
	tx pgx.Tx
}

func (t *pgScoreTx) ClaimFirstAcceptance(ctx context.Context, competitionID, groupID, exerciseID uuid.UUID) (bool, error) {
	query := `
		INSERT INTO solved_exercises (competition_id, group_id, exercise_id, solved_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (competition_id, group_id, exercise_id) DO NOTHING
	`
	tag, err := t.tx.Exec(ctx, query, competitionID, groupID, exerciseID)
	if err != nil {
		return false, fmt.Errorf("failed to claim first acceptance: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (t *pgScoreTx) RankingEntries(ctx context.Context, competitionID uuid.UUID) ([]contest.RankingEntry, error) {
	return queryRankingEntries(ctx, t.tx, competitionID, true)
}

func (t *pgScoreTx) SaveRankingEntries(ctx context.Context, entries []contest.RankingEntry) error {
	query := `
		INSERT INTO ranking_entries (
			id, competition_id, group_id, points, penalty_secs, rank_order, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (competition_id, group_id) DO UPDATE
		SET points = EXCLUDED.points,
			penalty_secs = EXCLUDED.penalty_secs,
			rank_order = EXCLUDED.rank_order
	`
	for _, entry := range entries {
		_, err := t.tx.Exec(ctx, query,
			entry.ID,
			entry.CompetitionID,
			entry.GroupID,
			entry.Points,
			int64(entry.Penalty/time.Second),
			entry.RankOrder,
			entry.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert ranking entry: %w", err)
		}
	}
	return nil
}

func (t *pgScoreTx) SolvedCount(ctx context.Context, competitionID, groupID uuid.UUID) (int, error) {
	return querySolvedCount(ctx, t.tx, competitionID, groupID)
}

type pgQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func queryRankingEntries(ctx context.Context, q pgQuerier, competitionID uuid.UUID, forUpdate bool) ([]contest.RankingEntry, error) {
	query := `
		SELECT id, competition_id, group_id, points, penalty_secs, rank_order, created_at
		FROM ranking_entries
		WHERE competition_id = $1
		ORDER BY rank_order
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	rows, err := q.Query(ctx, query, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranking entries: %w", err)
	}
	defer rows.Close()

	var entries []contest.RankingEntry
	for rows.Next() {
		entry, err := scanRankingEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ranking entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ranking entries: %w", err)
	}
	return entries, nil
}

func scanRankingEntry(row pgx.Row) (*contest.RankingEntry, error) {
	var entry contest.RankingEntry
	var penaltySecs int64
	err := row.Scan(
		&entry.ID,
		&entry.CompetitionID,
		&entry.GroupID,
		&entry.Points,
		&penaltySecs,
		&entry.RankOrder,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	entry.Penalty = time.Duration(penaltySecs) * time.Second
	return &entry, nil
}

func querySolvedCount(ctx context.Context, q pgQuerier, competitionID, groupID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM solved_exercises
		WHERE competition_id = $1 AND group_id = $2
	`
	var count int
	if err := q.QueryRow(ctx, query, competitionID, groupID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count solved exercises: %w", err)
	}
	return count, nil
}
