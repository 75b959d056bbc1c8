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

type userDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	model.User `bson:",inline"`
}

func (d userDoc) toModel() model.User {
	u := d.User
	u.ID = d.ID.Hex()
	return u
}

type Users struct {
	coll *mongo.Collection
	inst *store.Instrument
}

func (s *Users) List(ctx context.Context) (_ []model.User, err error) {
	ctx, end := s.inst.Start(ctx, "users.list")
	defer end(&err)

	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "username", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "find users")
	}

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode users")
	}

	users := make([]model.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toModel())
	}
	return users, nil
}

func (s *Users) Get(ctx context.Context, id string) (_ *model.User, err error) {
	ctx, end := s.inst.Start(ctx, "users.get")
	defer end(&err)

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc userDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err)
	}

	u := doc.toModel()
	return &u, nil
}

func (s *Users) Create(ctx context.Context, u model.User) (_ *model.User, err error) {
	ctx, end := s.inst.Start(ctx, "users.create")
	defer end(&err)

	u.CreatedAt = now()
	u.UpdatedAt = u.CreatedAt

	res, err := s.coll.InsertOne(ctx, userDoc{User: u})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.Wrapf(store.ErrDuplicate, "username %q", u.Username)
		}
		return nil, errors.Wrap(err, "insert user")
	}

	u.ID = insertedID(res)
	return &u, nil
}

func (s *Users) Delete(ctx context.Context, id string) (err error) {
	ctx, end := s.inst.Start(ctx, "users.delete")
	defer end(&err)

	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "delete user")
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
