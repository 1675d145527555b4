package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Snapshot is the complete current contents of a watched collection. Every
// push carries the whole result set, never a delta.
type Snapshot struct {
	Docs []bson.Raw
}

// Subscription delivers snapshots on C until Cancel is called. Consumers own
// the teardown: every Watch call must be paired with Cancel when the
// consuming view goes away.
type Subscription struct {
	C chan Snapshot

	cancel context.CancelFunc
	done   chan struct{}
}

func (s *Subscription) Cancel() {
	s.cancel()
	<-s.done
}

// Watch emits an initial snapshot immediately, then re-reads the full
// collection after every change stream event. Slow consumers only ever see
// the newest snapshot; intermediate ones are dropped.
func (s *Store) Watch(ctx context.Context, coll *mongo.Collection, logger *zap.Logger) (*Subscription, error) {
	ctx, cancel := context.WithCancel(ctx)

	stream, err := coll.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, err
	}

	sub := &Subscription{
		C:      make(chan Snapshot, 1),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(sub.done)
		defer close(sub.C)
		defer stream.Close(context.Background())

		if snap, err := readAll(ctx, coll); err == nil {
			sub.push(snap)
		} else if ctx.Err() == nil {
			logger.Error("initial collection read failed",
				zap.String("collection", coll.Name()),
				zap.Error(err))
		}

		for stream.Next(ctx) {
			snap, err := readAll(ctx, coll)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Error("collection re-read failed",
					zap.String("collection", coll.Name()),
					zap.Error(err))
				continue
			}
			sub.push(snap)
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			logger.Error("change stream closed",
				zap.String("collection", coll.Name()),
				zap.Error(err))
		}
	}()

	return sub, nil
}

func (s *Subscription) push(snap Snapshot) {
	for {
		select {
		case s.C <- snap:
			return
		default:
			// Drop the stale snapshot sitting in the buffer.
			select {
			case <-s.C:
			default:
			}
		}
	}
}

func readAll(ctx context.Context, coll *mongo.Collection) (Snapshot, error) {
	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return Snapshot{}, err
	}
	var docs []bson.Raw
	if err := cursor.All(ctx, &docs); err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Docs: docs}, nil
}
