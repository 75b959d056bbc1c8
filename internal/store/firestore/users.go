package firestore

import (
	"context"

	"tracker/internal/model"
	"tracker/internal/store"

	"cloud.google.com/go/firestore"
	"github.com/go-faster/errors"
)

type Users struct {
	client     *firestore.Client
	collection string
	inst       *store.Instrument
}

func (s *Users) List(ctx context.Context) (_ []model.User, err error) {
	ctx, end := s.inst.Start(ctx, "users.list")
	defer end(&err)

	dsnap, err := s.client.Collection(s.collection).
		OrderBy("username", firestore.Asc).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}

	users := make([]model.User, 0, len(dsnap))
	for _, doc := range dsnap {
		var u model.User
		if err := doc.DataTo(&u); err != nil {
			return nil, err
		}
		u.ID = doc.Ref.ID
		users = append(users, u)
	}
	return users, nil
}

func (s *Users) Get(ctx context.Context, id string) (_ *model.User, err error) {
	ctx, end := s.inst.Start(ctx, "users.get")
	defer end(&err)

	id, err = docID(id)
	if err != nil {
		return nil, err
	}

	doc, err := s.client.Collection(s.collection).Doc(id).Get(ctx)
	if err != nil {
		return nil, notFound(err)
	}

	var u model.User
	if err := doc.DataTo(&u); err != nil {
		return nil, err
	}
	u.ID = doc.Ref.ID
	return &u, nil
}

// Create inserts u inside a transaction that rejects a username already in use.
func (s *Users) Create(ctx context.Context, u model.User) (_ *model.User, err error) {
	ctx, end := s.inst.Start(ctx, "users.create")
	defer end(&err)

	u.CreatedAt = now()
	u.UpdatedAt = u.CreatedAt
	u.ID = newID()

	coll := s.client.Collection(s.collection)
	err = s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		existing, err := tx.Documents(coll.Where("username", "==", u.Username).Limit(1)).GetAll()
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return errors.Wrapf(store.ErrDuplicate, "username %q", u.Username)
		}
		return tx.Create(coll.Doc(u.ID), u)
	})
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (s *Users) Delete(ctx context.Context, id string) (err error) {
	ctx, end := s.inst.Start(ctx, "users.delete")
	defer end(&err)

	id, err = docID(id)
	if err != nil {
		return err
	}

	_, err = s.client.Collection(s.collection).Doc(id).Delete(ctx, firestore.Exists)
	return notFound(err)
}
