package scoring

import (
	"context"

	"github.com/codeclash/backend/contest"
	"github.com/google/uuid"
)

// RankingUpdate is pushed to subscribers after every leaderboard recompute
// so a real-time layer can fan it out to connected clients.
type RankingUpdate struct {
	CompetitionID uuid.UUID
	Entries       []contest.RankingEntry
}

type rankingSub struct {
	competitionID uuid.UUID
	ch            chan *RankingUpdate
}

func (e *Engine) broadcastRankingUpdate(update *RankingUpdate) {
	e.listenerLock.Lock()
	defer e.listenerLock.Unlock()

	for _, listener := range e.rankingSubs {
		if listener.competitionID != update.CompetitionID {
			continue
		}
		select {
		case <-listener.ch:
			// dropped the stale update the subscriber had not consumed
		default:
		}

		select {
		case listener.ch <- update:
		default:
			e.logger.Error("failed to send ranking update to listener",
				"competition_id", update.CompetitionID)
		}
	}
}

// ListenToRankingUpdates subscribes to leaderboard recomputes of one
// competition until ctx is cancelled. A slow subscriber only ever sees the
// latest update, intermediate ones are dropped.
func (e *Engine) ListenToRankingUpdates(ctx context.Context, competitionID uuid.UUID) <-chan *RankingUpdate {
	e.listenerLock.Lock()
	defer e.listenerLock.Unlock()

	ch := make(chan *RankingUpdate, 1)
	e.rankingSubs = append(e.rankingSubs, rankingSub{competitionID, ch})

	go func() {
		<-ctx.Done()
		e.listenerLock.Lock()
		defer e.listenerLock.Unlock()
		for i, listener := range e.rankingSubs {
			if listener.ch == ch {
				e.rankingSubs = append(e.rankingSubs[:i], e.rankingSubs[i+1:]...)
				break
			}
		}
		close(ch)
	}()

	return ch
}
