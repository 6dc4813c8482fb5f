package checkpoint

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"streamagg/agg"
	"streamagg/logger"
	"streamagg/partition"
)

// Query pairs a query's checkpoint namespace with its partition
// arena.
type Query struct {
	ID    int64
	Arena *partition.Store
}

// Checkpointer persists and recovers per-partition aggregate state.
// Checkpoint and Restore run in a quiescent window: no add/remove for
// the involved states may be in flight.
type Checkpointer struct {
	store *BackingStore
	log   zerolog.Logger
}

func NewCheckpointer(store *BackingStore) *Checkpointer {
	return &Checkpointer{
		store: store,
		log:   logger.Get("checkpoint"),
	}
}

// Checkpoint persists a snapshot of every live state of every query.
// Queries are checkpointed concurrently; states within one query
// sequentially, since they share an arena.
func (c *Checkpointer) Checkpoint(ctx context.Context, queries ...Query) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, q := range queries {
		q := q
		g.Go(func() error {
			return c.checkpointQuery(ctx, q)
		})
	}
	return g.Wait()
}

func (c *Checkpointer) checkpointQuery(ctx context.Context, q Query) error {
	var err error
	count := 0
	q.Arena.Range(func(key partition.Key, state agg.State) bool {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
			return false
		}
		if putErr := c.store.Put(q.ID, string(key), state.Snapshot()); putErr != nil {
			err = fmt.Errorf("checkpoint query %d key %q: %w", q.ID, key, putErr)
			return false
		}
		count++
		return true
	})
	if err != nil {
		return err
	}
	c.log.Debug().Int64("query", q.ID).Int("states", count).Msg("checkpointed query")
	return nil
}

// Restore rebuilds a query's arena from its persisted snapshots. Each
// state is produced by the factory and then restored, leaving it in
// the same shape as if it had been built incrementally. A snapshot the
// state rejects surfaces as a recovery failure; nothing is silently
// defaulted.
func (c *Checkpointer) Restore(queryID int64, arena *partition.Store) error {
	restored := 0
	err := c.store.IterateQuery(queryID, func(groupKey string, snap *agg.Snapshot) error {
		state := arena.GetOrCreate(partition.Key(groupKey))
		if err := state.Restore(snap); err != nil {
			return fmt.Errorf("restore query %d key %q: %w", queryID, groupKey, err)
		}
		restored++
		return nil
	})
	if err != nil {
		return err
	}
	c.log.Info().Int64("query", queryID).Int("states", restored).Msg("restored query state")
	return nil
}
