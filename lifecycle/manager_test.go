package lifecycle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"
)

func orderDoc(id primitive.ObjectID, status Status) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "status", Value: string(status)},
	}
}

func TestManagerAdvance(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("received advances to cutting", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, orderDoc(id, StatusReceived)),
			mtest.CreateSuccessResponse(),
		)

		m := NewManager(mt.Coll, zap.NewNop(), nil)
		status, advanced, err := m.Advance(context.Background(), id)
		require.NoError(mt, err)
		assert.True(mt, advanced)
		assert.Equal(mt, StatusCutting, status)
	})

	mt.Run("missing order surfaces an error", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		m := NewManager(mt.Coll, zap.NewNop(), nil)
		status, advanced, err := m.Advance(context.Background(), primitive.NewObjectID())
		require.Error(mt, err)
		assert.False(mt, advanced)
		assert.Equal(mt, Status(""), status)
	})

	mt.Run("delivered order no-ops without a write", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, orderDoc(id, StatusDelivered)))

		m := NewManager(mt.Coll, zap.NewNop(), nil)
		status, advanced, err := m.Advance(context.Background(), id)
		require.NoError(mt, err)
		assert.False(mt, advanced)
		assert.Equal(mt, StatusDelivered, status)
	})

	mt.Run("failed write keeps the current status", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, orderDoc(id, StatusReceived)),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11600,
				Message: "interrupted at shutdown",
			}),
		)

		m := NewManager(mt.Coll, zap.NewNop(), nil)
		status, advanced, err := m.Advance(context.Background(), id)
		require.NoError(mt, err)
		assert.False(mt, advanced)
		assert.Equal(mt, StatusReceived, status)
	})

	mt.Run("delivery transition triggers the credit hook", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, orderDoc(id, StatusOutForDelivery)),
			mtest.CreateSuccessResponse(),
		)

		var credited []primitive.ObjectID
		m := NewManager(mt.Coll, zap.NewNop(), func(ctx context.Context, orderID primitive.ObjectID) error {
			credited = append(credited, orderID)
			return nil
		})
		status, advanced, err := m.Advance(context.Background(), id)
		require.NoError(mt, err)
		assert.True(mt, advanced)
		assert.Equal(mt, StatusDelivered, status)
		assert.Equal(mt, []primitive.ObjectID{id}, credited)
	})
}
