package internal

import (
	"context"
	"encoding/base64"
	"strings"

	"tracker/internal/config"
	"tracker/internal/events"
	"tracker/internal/store"
	"tracker/internal/store/firestore"
	"tracker/internal/store/mongodb"

	"github.com/go-faster/errors"
	"google.golang.org/api/option"
)

const firestoreScheme = "firestore://"

// OpenDatabase connects to the database named by cfg.URI and waits at most
// cfg.ConnectTimeout for it to answer.
func OpenDatabase(ctx context.Context, cfg config.Database) (store.Database, error) {
	if cfg.URI == "" {
		return nil, errors.New("ATLAS_URI is not set")
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	switch {
	case strings.HasPrefix(cfg.URI, "mongodb://"), strings.HasPrefix(cfg.URI, "mongodb+srv://"):
		db, err := mongodb.Connect(ctx, cfg.URI, cfg.Name)
		if err != nil {
			return nil, err
		}
		return db, nil
	case strings.HasPrefix(cfg.URI, firestoreScheme):
		projectID := strings.Trim(strings.TrimPrefix(cfg.URI, firestoreScheme), "/")
		if projectID == "" {
			return nil, errors.New("firestore URI has no project id")
		}
		opts, err := serviceAccount(cfg.FirestoreSA)
		if err != nil {
			return nil, err
		}
		db, err := firestore.Connect(ctx, projectID, opts...)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		// The URI may carry credentials, so only the scheme is reported.
		scheme, _, _ := strings.Cut(cfg.URI, "://")
		return nil, errors.Errorf("unsupported database URI scheme %q", scheme)
	}
}

// OpenPublisher returns a Pub/Sub publisher when a project is configured and a no-op one otherwise.
func OpenPublisher(ctx context.Context, cfg *config.Config) (events.Publisher, error) {
	if cfg.Events.ProjectID == "" {
		return events.Noop{}, nil
	}

	opts, err := serviceAccount(cfg.Database.FirestoreSA)
	if err != nil {
		return nil, err
	}

	p, err := events.NewPubSub(ctx, cfg.Events.ProjectID, cfg.Events.Topic, opts...)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// serviceAccount decodes a base64 service account JSON into client options.
// Empty input means application default credentials.
func serviceAccount(b64 string) ([]option.ClientOption, error) {
	if b64 == "" {
		return nil, nil
	}
	saJSON, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, errors.Wrap(err, "decode FIRESTORE_SA")
	}
	return []option.ClientOption{option.WithCredentialsJSON(saJSON)}, nil
}
