package firestore

import (
	"context"
	"strings"
	"time"

	"tracker/internal/store"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	usersCollection     = "users"
	exercisesCollection = "exercises"
)

// DB is a store.Database backed by Cloud Firestore.
type DB struct {
	client    *firestore.Client
	users     *Users
	exercises *Exercises
}

// Connect opens a Firestore client for projectID and checks it with a read.
func Connect(ctx context.Context, projectID string, opts ...option.ClientOption) (*DB, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create firebase app")
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "create firestore client")
	}

	db := New(client)
	if err := db.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "ping firestore")
	}

	return db, nil
}

func New(client *firestore.Client) *DB {
	inst := store.NewInstrument("firestore")
	return &DB{
		client:    client,
		users:     &Users{client: client, collection: usersCollection, inst: inst},
		exercises: &Exercises{client: client, collection: exercisesCollection, inst: inst},
	}
}

func (db *DB) Users() store.UserStorer {
	return db.users
}

func (db *DB) Exercises() store.ExerciseStorer {
	return db.exercises
}

// Ping reads at most one user document.
func (db *DB) Ping(ctx context.Context) error {
	_, err := db.client.Collection(usersCollection).Limit(1).Documents(ctx).GetAll()
	return err
}

func (db *DB) Close(context.Context) error {
	return db.client.Close()
}

func docID(id string) (string, error) {
	if id == "" || strings.Contains(id, "/") || len(id) > 1500 {
		return "", errors.Wrapf(store.ErrInvalidID, "%q", id)
	}
	return id, nil
}

func newID() string {
	return uuid.NewString()
}

func now() time.Time {
	return time.Now().UTC()
}

func notFound(err error) error {
	if status.Code(err) == codes.NotFound {
		return store.ErrNotFound
	}
	return err
}
