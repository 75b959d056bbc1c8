package mongodb_test

import (
	"context"
	"testing"
	"time"

	"tracker/internal/model"
	"tracker/internal/store"
	"tracker/internal/store/mongodb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestConnect_InvalidURI(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := mongodb.Connect(ctx, "invalid-uri", "test")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to MongoDB")
}

func TestUsers(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mt.Run("list", func(mt *mtest.T) {
		id1, id2 := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: id1}, {Key: "username", Value: "alice"}, {Key: "createdAt", Value: created}},
			bson.D{{Key: "_id", Value: id2}, {Key: "username", Value: "bob"}, {Key: "createdAt", Value: created}},
		))

		users, err := mongodb.New(mt.DB).Users().List(context.Background())
		require.NoError(t, err)

		require.Len(t, users, 2)
		assert.Equal(t, id1.Hex(), users[0].ID)
		assert.Equal(t, "alice", users[0].Username)
		assert.Equal(t, created, users[0].CreatedAt.UTC())
		assert.Equal(t, "bob", users[1].Username)
	})

	mt.Run("get", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: id}, {Key: "username", Value: "alice"}},
		))

		u, err := mongodb.New(mt.DB).Users().Get(context.Background(), id.Hex())
		require.NoError(t, err)
		assert.Equal(t, id.Hex(), u.ID)
		assert.Equal(t, "alice", u.Username)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch))

		_, err := mongodb.New(mt.DB).Users().Get(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	mt.Run("get invalid id", func(mt *mtest.T) {
		_, err := mongodb.New(mt.DB).Users().Get(context.Background(), "not-an-object-id")
		assert.ErrorIs(t, err, store.ErrInvalidID)
	})

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		u, err := mongodb.New(mt.DB).Users().Create(context.Background(), model.User{Username: "alice"})
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "alice", u.Username)
		assert.False(t, u.CreatedAt.IsZero())
		assert.Equal(t, u.CreatedAt, u.UpdatedAt)
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: test.users index: username_unique",
		}))

		_, err := mongodb.New(mt.DB).Users().Create(context.Background(), model.User{Username: "alice"})
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		err := mongodb.New(mt.DB).Users().Delete(context.Background(), primitive.NewObjectID().Hex())
		assert.NoError(t, err)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := mongodb.New(mt.DB).Users().Delete(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestExercises(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mt.Run("list", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.exercises", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: id},
				{Key: "username", Value: "alice"},
				{Key: "description", Value: "run"},
				{Key: "duration", Value: 30.0},
				{Key: "date", Value: date},
			},
		))

		exercises, err := mongodb.New(mt.DB).Exercises().List(context.Background())
		require.NoError(t, err)

		require.Len(t, exercises, 1)
		assert.Equal(t, id.Hex(), exercises[0].ID)
		assert.Equal(t, "run", exercises[0].Description)
		assert.Equal(t, 30.0, exercises[0].Duration)
		assert.Equal(t, date, exercises[0].Date.UTC())
	})

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		e, err := mongodb.New(mt.DB).Exercises().Create(context.Background(), model.Exercise{
			Username:    "alice",
			Description: "run",
			Duration:    30,
			Date:        date,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, "run", e.Description)
		assert.False(t, e.CreatedAt.IsZero())
	})

	mt.Run("update", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "username", Value: "alice"},
			{Key: "description", Value: "swim"},
			{Key: "duration", Value: 45.0},
			{Key: "date", Value: date},
		}}))

		e, err := mongodb.New(mt.DB).Exercises().Update(context.Background(), id.Hex(), model.Exercise{
			Username:    "alice",
			Description: "swim",
			Duration:    45,
			Date:        date,
		})
		require.NoError(t, err)
		assert.Equal(t, id.Hex(), e.ID)
		assert.Equal(t, "swim", e.Description)
		assert.Equal(t, 45.0, e.Duration)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := mongodb.New(mt.DB).Exercises().Update(context.Background(), primitive.NewObjectID().Hex(), model.Exercise{
			Username:    "alice",
			Description: "swim",
			Duration:    45,
			Date:        date,
		})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	mt.Run("update invalid id", func(mt *mtest.T) {
		_, err := mongodb.New(mt.DB).Exercises().Update(context.Background(), "123", model.Exercise{})
		assert.ErrorIs(t, err, store.ErrInvalidID)
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		err := mongodb.New(mt.DB).Exercises().Delete(context.Background(), primitive.NewObjectID().Hex())
		assert.NoError(t, err)
	})
}
