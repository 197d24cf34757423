package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/handrank/internal/dealer"
	"github.com/lox/handrank/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEvaluator = poker.NewEvaluator(poker.NewLookupTable())

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	clock := quartz.NewMock(t)
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	clock.Set(start)
	d := dealer.New(testEvaluator, poker.OrderedShuffler{}, dealer.WithClock(clock))

	var ids []string
	for i := range 3 {
		clock.Set(start.Add(time.Duration(i) * time.Minute))
		deal, err := d.Deal(3)
		require.NoError(t, err)
		require.NoError(t, store.Record(ctx, deal))
		ids = append(ids, deal.ID)
	}

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	records, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	newest := records[0]
	assert.Equal(t, ids[2], newest.ID)
	assert.Equal(t, ids[1], records[1].ID)
	assert.True(t, start.Add(2*time.Minute).Equal(newest.DealtAt))
	assert.Equal(t, 3, newest.Players)
	assert.Equal(t, 299, newest.BestRank)
	assert.Equal(t, "Full House", newest.BestHand)

	require.NotNil(t, newest.Deal)
	assert.Equal(t, ids[2], newest.Deal.ID)
	assert.Equal(t, []int{0}, newest.Deal.Winners)
	assert.Equal(t, []string{"Ac", "As"}, newest.Deal.Hands[0].Cards)
	assert.Equal(t, poker.HandRank(310), newest.Deal.Hands[1].Rank)
}

func TestRecordDuplicate(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	deal, err := dealer.New(testEvaluator, poker.OrderedShuffler{}).Deal(2)
	require.NoError(t, err)
	require.NoError(t, store.Record(ctx, deal))
	assert.Error(t, store.Record(ctx, deal))
}

func TestRecordEmptyDeal(t *testing.T) {
	store := openStore(t)
	assert.Error(t, store.Record(context.Background(), &dealer.Deal{ID: "empty"}))
}

func TestRecentLimits(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	records, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = store.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestReopenKeepsDeals(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	deal, err := dealer.New(testEvaluator, poker.OrderedShuffler{}).Deal(4)
	require.NoError(t, err)
	require.NoError(t, store.Record(ctx, deal))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
