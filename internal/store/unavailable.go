package store

import (
	"context"

	"tracker/internal/model"
)

// Unavailable stands in for a database that could not be reached at startup.
// Every operation fails with ErrUnavailable.
type Unavailable struct {
	Err error
}

func (u Unavailable) err() error {
	if u.Err == nil {
		return ErrUnavailable
	}
	return &unavailableError{cause: u.Err}
}

func (u Unavailable) Users() UserStorer { return unavailableUsers{u} }
func (u Unavailable) Exercises() ExerciseStorer { return unavailableExercises{u} }
func (u Unavailable) Ping(context.Context) error { return u.err() }
func (u Unavailable) Close(context.Context) error { return nil }

type unavailableError struct {
	cause error
}

func (e *unavailableError) Error() string {
	return ErrUnavailable.Error() + ": " + e.cause.Error()
}

func (e *unavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

func (e *unavailableError) Unwrap() error {
	return e.cause
}

type unavailableUsers struct{ u Unavailable }

func (s unavailableUsers) List(context.Context) ([]model.User, error) { return nil, s.u.err() }
func (s unavailableUsers) Get(context.Context, string) (*model.User, error) {
	return nil, s.u.err()
}
func (s unavailableUsers) Create(context.Context, model.User) (*model.User, error) {
	return nil, s.u.err()
}
func (s unavailableUsers) Delete(context.Context, string) error { return s.u.err() }

type unavailableExercises struct{ u Unavailable }

func (s unavailableExercises) List(context.Context) ([]model.Exercise, error) {
	return nil, s.u.err()
}
func (s unavailableExercises) Get(context.Context, string) (*model.Exercise, error) {
	return nil, s.u.err()
}
func (s unavailableExercises) Create(context.Context, model.Exercise) (*model.Exercise, error) {
	return nil, s.u.err()
}
func (s unavailableExercises) Update(context.Context, string, model.Exercise) (*model.Exercise, error) {
	return nil, s.u.err()
}
func (s unavailableExercises) Delete(context.Context, string) error { return s.u.err() }
