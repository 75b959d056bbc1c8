package mongodb

import (
	"context"

	"tracker/internal/model"
	"tracker/internal/store"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type exerciseDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	model.Exercise `bson:",inline"`
}

func (d exerciseDoc) toModel() model.Exercise {
	e := d.Exercise
	e.ID = d.ID.Hex()
	return e
}

type Exercises struct {
	coll *mongo.Collection
	inst *store.Instrument
}

func (s *Exercises) List(ctx context.Context) (_ []model.Exercise, err error) {
	ctx, end := s.inst.Start(ctx, "exercises.list")
	defer end(&err)

	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "_id", Value: -1},
	}))
	if err != nil {
		return nil, errors.Wrap(err, "find exercises")
	}

	var docs []exerciseDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode exercises")
	}

	exercises := make([]model.Exercise, 0, len(docs))
	for _, d := range docs {
		exercises = append(exercises, d.toModel())
	}
	return exercises, nil
}

func (s *Exercises) Get(ctx context.Context, id string) (_ *model.Exercise, err error) {
	ctx, end := s.inst.Start(ctx, "exercises.get")
	defer end(&err)

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc exerciseDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err)
	}

	e := doc.toModel()
	return &e, nil
}

func (s *Exercises) Create(ctx context.Context, e model.Exercise) (_ *model.Exercise, err error) {
	ctx, end := s.inst.Start(ctx, "exercises.create")
	defer end(&err)

	e.CreatedAt = now()
	e.UpdatedAt = e.CreatedAt

	res, err := s.coll.InsertOne(ctx, exerciseDoc{Exercise: e})
	if err != nil {
		return nil, errors.Wrap(err, "insert exercise")
	}

	e.ID = insertedID(res)
	return &e, nil
}

func (s *Exercises) Update(ctx context.Context, id string, e model.Exercise) (_ *model.Exercise, err error) {
	ctx, end := s.inst.Start(ctx, "exercises.update")
	defer end(&err)

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"username":    e.Username,
		"description": e.Description,
		"duration":    e.Duration,
		"date":        e.Date,
		"updatedAt":   now(),
	}}

	var doc exerciseDoc
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		return nil, notFound(err)
	}

	updated := doc.toModel()
	return &updated, nil
}

func (s *Exercises) Delete(ctx context.Context, id string) (err error) {
	ctx, end := s.inst.Start(ctx, "exercises.delete")
	defer end(&err)

	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "delete exercise")
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
