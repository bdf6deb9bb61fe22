package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sandeepkv93/routined/internal/logging"
	"github.com/sandeepkv93/routined/internal/model"
	"github.com/sandeepkv93/routined/internal/storage"
)

// Save writes the state and the close timestamp in one SetMany call.
func Save(ctx context.Context, repo storage.Repository, s model.State, now time.Time) error {
	raw, err := Encode(s)
	if err != nil {
		return err
	}
	err = repo.SetMany(ctx, []storage.Entry{
		{Key: KeyState, Value: raw, UpdatedAt: now},
		{Key: KeyLastClosedAt, Value: FormatTimestamp(now), UpdatedAt: now},
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load reads and rehydrates the persisted state. found is false when nothing
// was saved. A missing or unreadable close timestamp counts as no elapsed time.
func Load(ctx context.Context, repo storage.Repository, now time.Time) (model.State, bool, error) {
	entries, err := repo.GetMany(ctx, KeyState, KeyLastClosedAt)
	if err != nil {
		return model.State{}, false, fmt.Errorf("load session: %w", err)
	}
	stateEntry, ok := entries[KeyState]
	if !ok {
		return model.State{}, false, nil
	}
	s, err := Decode(stateEntry.Value)
	if err != nil {
		return model.State{}, true, err
	}
	closedAt := now
	if tsEntry, ok := entries[KeyLastClosedAt]; ok {
		if parsed, perr := ParseTimestamp(tsEntry.Value); perr == nil {
			closedAt = parsed
		}
	}
	return Rehydrate(s, closedAt, now), true, nil
}

// Restore is the startup path: it falls back to DefaultState when nothing is
// saved or the saved payload is malformed. Storage failures are returned.
func Restore(ctx context.Context, repo storage.Repository, now time.Time, logger *slog.Logger) (model.State, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s, found, err := Load(ctx, repo, now)
	switch {
	case errors.Is(err, ErrMalformedState):
		logger.Warn("persisted state is malformed, using defaults", logging.Err(err))
		return DefaultState(), nil
	case err != nil:
		return model.State{}, err
	case !found:
		logger.Info("no persisted state, using defaults")
		return DefaultState(), nil
	}
	logger.Info("session restored", logging.Count(len(s.Routines)))
	return s, nil
}
