package firestore

import (
	"context"

	"tracker/internal/model"
	"tracker/internal/store"

	"cloud.google.com/go/firestore"
	"github.com/go-faster/errors"
)

type Exercises struct {
	client     *firestore.Client
	collection string
	inst       *store.Instrument
}

func (s *Exercises) List(ctx context.Context) (_ []model.Exercise, err error) {
	ctx, end := s.inst.Start(ctx, "exercises.list")
	defer end(&err)

	dsnap, err := s.client.Collection(s.collection).
		OrderBy("date", firestore.Desc).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "list exercises")
	}

	exercises := make([]model.Exercise, 0, len(dsnap))
	for _, doc := range dsnap {
		e, err := decodeExercise(doc)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	return exercises, nil
}

func (s *Exercises) Get(ctx context.Context, id string) (_ *model.Exercise, err error) {
	ctx, end := s.inst.Start(ctx, "exercises.get")
	defer end(&err)

	id, err = docID(id)
	if err != nil {
		return nil, err
	}

	doc, err := s.client.Collection(s.collection).Doc(id).Get(ctx)
	if err != nil {
		return nil, notFound(err)
	}

	e, err := decodeExercise(doc)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Exercises) Create(ctx context.Context, e model.Exercise) (_ *model.Exercise, err error) {
	ctx, end := s.inst.Start(ctx, "exercises.create")
	defer end(&err)

	e.CreatedAt = now()
	e.UpdatedAt = e.CreatedAt
	e.ID = newID()

	if _, err := s.client.Collection(s.collection).Doc(e.ID).Create(ctx, e); err != nil {
		return nil, errors.Wrap(err, "create exercise")
	}
	return &e, nil
}

func (s *Exercises) Update(ctx context.Context, id string, e model.Exercise) (_ *model.Exercise, err error) {
	ctx, end := s.inst.Start(ctx, "exercises.update")
	defer end(&err)

	id, err = docID(id)
	if err != nil {
		return nil, err
	}

	ref := s.client.Collection(s.collection).Doc(id)
	_, err = ref.Update(ctx, []firestore.Update{
		{Path: "username", Value: e.Username},
		{Path: "description", Value: e.Description},
		{Path: "duration", Value: e.Duration},
		{Path: "date", Value: e.Date},
		{Path: "updatedAt", Value: now()},
	})
	if err != nil {
		return nil, notFound(err)
	}

	doc, err := ref.Get(ctx)
	if err != nil {
		return nil, notFound(err)
	}

	updated, err := decodeExercise(doc)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Exercises) Delete(ctx context.Context, id string) (err error) {
	ctx, end := s.inst.Start(ctx, "exercises.delete")
	defer end(&err)

	id, err = docID(id)
	if err != nil {
		return err
	}

	_, err = s.client.Collection(s.collection).Doc(id).Delete(ctx, firestore.Exists)
	return notFound(err)
}

func decodeExercise(doc *firestore.DocumentSnapshot) (model.Exercise, error) {
	var e model.Exercise
	if err := doc.DataTo(&e); err != nil {
		return model.Exercise{}, err
	}
	e.ID = doc.Ref.ID
	return e, nil
}
