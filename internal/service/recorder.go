package service

import (
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/logging"
)

// MatchRepo is the persistence surface finished matches need.
type MatchRepo interface {
	SaveMatchRecord(rec *game.MatchRecord) error
	UpdateStatsOnMatchEnd(rec *game.MatchRecord) error
}

// MatchRecorder persists terminal match outcomes and folds them into the
// players' aggregate stats. It is handed to the session layer, which calls
// it exactly once per finished match.
type MatchRecorder struct {
	Repo MatchRepo
}

func (r MatchRecorder) SaveMatchRecord(rec *game.MatchRecord) error {
	if err := r.Repo.SaveMatchRecord(rec); err != nil {
		return err
	}
	// Stats are best effort: the record is the source of truth and stats
	// can be rebuilt from it.
	if err := r.Repo.UpdateStatsOnMatchEnd(rec); err != nil {
		logging.Error("failed to update stats on match end", err, logging.Fields{"match_id": rec.MatchID})
	}
	return nil
}
