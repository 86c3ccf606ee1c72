// Copyright (c) 2026 RateUp. All rights reserved.

package vote

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nifoox/rateup/internal/platform/apperr"
)

func newTestLedger(store Store) *Ledger {
	return NewLedger(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestParseValue(t *testing.T) {
	value, err := ParseValue(1)
	require.NoError(t, err)
	assert.Equal(t, Up, value)

	value, err = ParseValue(-1)
	require.NoError(t, err)
	assert.Equal(t, Down, value)

	for _, raw := range []int{0, 2, -2, 100} {
		_, err := ParseValue(raw)
		assert.True(t, apperr.Is(err, apperr.CodeInvalidData), "value %d", raw)
	}
}

func TestLedger_EmptySummary(t *testing.T) {
	ledger := newTestLedger(newMemoryStore(1))

	summary, err := ledger.Summarize(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)
}

/*
TestLedger_CastIsIdempotent verifies that repeating a cast keeps one row and
an unchanged tally.
*/
func TestLedger_CastIsIdempotent(t *testing.T) {
	store := newMemoryStore(1)
	ledger := newTestLedger(store)
	ctx := context.Background()

	first, err := ledger.Cast(ctx, 1, 10, Up)
	require.NoError(t, err)

	second, err := ledger.Cast(ctx, 1, 10, Up)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, Summary{Upvotes: 1, Downvotes: 0, Score: 1}, second)
	assert.Equal(t, 1, store.rows(1))
}

/*
TestLedger_CastOverwrites verifies that changing direction replaces the row.
*/
func TestLedger_CastOverwrites(t *testing.T) {
	store := newMemoryStore(1)
	ledger := newTestLedger(store)
	ctx := context.Background()

	_, err := ledger.Cast(ctx, 1, 10, Up)
	require.NoError(t, err)

	summary, err := ledger.Cast(ctx, 1, 10, Down)
	require.NoError(t, err)

	assert.Equal(t, Summary{Upvotes: 0, Downvotes: 1, Score: -1}, summary)
	assert.Equal(t, 1, store.rows(1))

	value, err := ledger.UserVote(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, Down, value)
}

func TestLedger_TallyAcrossUsers(t *testing.T) {
	ledger := newTestLedger(newMemoryStore(1, 2))
	ctx := context.Background()

	for userID, value := range map[int64]Value{1: Up, 2: Up, 3: Down, 4: Up, 5: Down, 6: Down, 7: Down} {
		_, err := ledger.Cast(ctx, 1, userID, value)
		require.NoError(t, err)
	}
	_, err := ledger.Cast(ctx, 2, 1, Up)
	require.NoError(t, err)

	summary, err := ledger.Summarize(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, Summary{Upvotes: 3, Downvotes: 4, Score: -1}, summary)
	assert.Equal(t, summary.Upvotes-summary.Downvotes, summary.Score)
}

/*
TestLedger_RetractIsIdempotent verifies that retracting a missing vote is a
no-op returning the current tally.
*/
func TestLedger_RetractIsIdempotent(t *testing.T) {
	store := newMemoryStore(1)
	ledger := newTestLedger(store)
	ctx := context.Background()

	_, err := ledger.Cast(ctx, 1, 20, Up)
	require.NoError(t, err)

	before, err := ledger.Summarize(ctx, 1)
	require.NoError(t, err)

	// 1. Retract for a user that never voted
	after, err := ledger.Retract(ctx, 1, 99)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// 2. Retract twice for a user that did vote
	summary, err := ledger.Retract(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)

	summary, err = ledger.Retract(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)

	value, err := ledger.UserVote(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, None, value)
}

/*
TestLedger_ConcurrentCastRace verifies that opposing concurrent casts for the
same pair leave exactly one row.
*/
func TestLedger_ConcurrentCastRace(t *testing.T) {
	store := newMemoryStore(1)
	ledger := newTestLedger(store)
	ctx := context.Background()

	const rounds = 200
	var wg sync.WaitGroup

	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := ledger.Cast(ctx, 1, 7, Up)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := ledger.Cast(ctx, 1, 7, Down)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, store.rows(1))

	summary, err := ledger.Summarize(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Upvotes+summary.Downvotes)

	value, err := ledger.UserVote(ctx, 1, 7)
	require.NoError(t, err)
	assert.Contains(t, []Value{Up, Down}, value)
}

func TestLedger_MissingReview(t *testing.T) {
	ledger := newTestLedger(newMemoryStore())

	_, err := ledger.Cast(context.Background(), 404, 1, Up)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestLedger_PropagatesStoreTimeout(t *testing.T) {
	store := newMemoryStore(1)
	store.err = apperr.StoreTimeout(context.DeadlineExceeded)
	ledger := newTestLedger(store)

	_, err := ledger.Cast(context.Background(), 1, 1, Up)
	assert.True(t, apperr.Is(err, apperr.CodeStoreTimeout))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	_, err = ledger.Summarize(context.Background(), 1)
	assert.True(t, apperr.Is(err, apperr.CodeStoreTimeout))

	_, err = ledger.Retract(context.Background(), 1, 1)
	assert.True(t, apperr.Is(err, apperr.CodeStoreTimeout))
}
