package internal

import (
	"context"

	"tracker/internal/config"
	"tracker/internal/events"

	"github.com/go-faster/errors"
	"github.com/rs/zerolog/log"
)

// Watch logs every change event published to the configured topic until ctx is done.
func Watch(ctx context.Context, cfg *config.Config) error {
	if cfg.Events.ProjectID == "" {
		return errors.New("EVENTS_PROJECT_ID is not set")
	}

	opts, err := serviceAccount(cfg.Database.FirestoreSA)
	if err != nil {
		return err
	}

	log.Info().
		Str("topic", cfg.Events.Topic).
		Str("subscription", cfg.Events.Subscription).
		Msg("watching events")

	return events.Subscribe(ctx, cfg.Events.ProjectID, cfg.Events.Topic, cfg.Events.Subscription,
		func(_ context.Context, e events.Event) error {
			log.Info().
				Str("type", e.Type).
				Str("id", e.ID).
				Str("username", e.Username).
				Time("time", e.Time).
				Msg("event")
			return nil
		}, opts...)
}
