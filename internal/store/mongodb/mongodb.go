package mongodb

import (
	"context"
	"time"

	"tracker/internal/store"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection     = "users"
	exercisesCollection = "exercises"
)

// DB is a store.Database backed by MongoDB.
type DB struct {
	client    *mongo.Client
	users     *Users
	exercises *Exercises
}

// Connect dials uri and pings the primary. ctx bounds both steps.
func Connect(ctx context.Context, uri, dbName string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connect to MongoDB")
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "ping MongoDB")
	}

	db := New(client.Database(dbName))
	db.client = client

	if err := db.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return db, nil
}

// New wraps an existing database handle. Close is a no-op unless the DB came from Connect.
func New(database *mongo.Database) *DB {
	inst := store.NewInstrument("mongodb")
	return &DB{
		users:     &Users{coll: database.Collection(usersCollection), inst: inst},
		exercises: &Exercises{coll: database.Collection(exercisesCollection), inst: inst},
	}
}

// EnsureIndexes creates the unique username index.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	_, err := db.users.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("username_unique"),
	})
	if err != nil {
		return errors.Wrap(err, "create users index")
	}
	return nil
}

func (db *DB) Users() store.UserStorer {
	return db.users
}

func (db *DB) Exercises() store.ExerciseStorer {
	return db.exercises
}

func (db *DB) Ping(ctx context.Context) error {
	if db.client == nil {
		return nil
	}
	return db.client.Ping(ctx, readpref.Primary())
}

func (db *DB) Close(ctx context.Context) error {
	if db.client == nil {
		return nil
	}
	return db.client.Disconnect(ctx)
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errors.Wrapf(store.ErrInvalidID, "%q", id)
	}
	return oid, nil
}

func insertedID(res *mongo.InsertOneResult) string {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return ""
}

// now is truncated to the millisecond precision BSON dates keep.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}
