package store

import (
	"context"

	"tracker/internal/model"

	"github.com/go-faster/errors"
)

var (
	// ErrNotFound is returned when the requested document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID is returned when an ID cannot be a document ID for the backend.
	ErrInvalidID = errors.New("invalid id")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("duplicate")
	// ErrUnavailable is returned when no database connection could be established.
	ErrUnavailable = errors.New("database unavailable")
)

type UserStorer interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, u model.User) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type ExerciseStorer interface {
	List(ctx context.Context) ([]model.Exercise, error)
	Get(ctx context.Context, id string) (*model.Exercise, error)
	Create(ctx context.Context, e model.Exercise) (*model.Exercise, error)
	Update(ctx context.Context, id string, e model.Exercise) (*model.Exercise, error)
	Delete(ctx context.Context, id string) error
}

// Database is the connection handle shared by every router.
type Database interface {
	Users() UserStorer
	Exercises() ExerciseStorer
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
