package trades

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/tradejournal-go/apperror"
)

// fakeTradeRepo is an in-memory TradeRepository. It mirrors the store
// contract including the append-to-owner side effect of Create.
type fakeTradeRepo struct {
	mu       sync.Mutex
	nextID   int64
	trades   map[int64]Trade
	owners   map[int64][]int64 // userID -> trade ids, insertion order
	ownerSet map[int64]bool    // users that exist
}

func newFakeTradeRepo(ownerIDs ...int64) *fakeTradeRepo {
	r := &fakeTradeRepo{
		trades:   make(map[int64]Trade),
		owners:   make(map[int64][]int64),
		ownerSet: make(map[int64]bool),
	}
	for _, id := range ownerIDs {
		r.ownerSet[id] = true
	}
	return r
}

func (r *fakeTradeRepo) Create(_ context.Context, trade *Trade) (*Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ownerSet[trade.UserID] {
		return nil, ErrOwnerNotFound
	}
	r.nextID++
	trade.ID = r.nextID
	r.trades[trade.ID] = *trade
	r.owners[trade.UserID] = append(r.owners[trade.UserID], trade.ID)
	return trade, nil
}

func (r *fakeTradeRepo) ListByUser(_ context.Context, userID int64) ([]Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := []Trade{}
	for _, id := range r.owners[userID] {
		list = append(list, r.trades[id])
	}
	return list, nil
}

func (r *fakeTradeRepo) Get(_ context.Context, id int64) (*Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trades[id]
	if !ok {
		return nil, ErrTradeNotFound
	}
	return &t, nil
}

func (r *fakeTradeRepo) Update(_ context.Context, trade *Trade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.trades[trade.ID]
	if !ok {
		return ErrTradeNotFound
	}
	trade.UserID = existing.UserID
	trade.CreatedAt = existing.CreatedAt
	r.trades[trade.ID] = *trade
	return nil
}

func (r *fakeTradeRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trades[id]
	if !ok {
		return ErrTradeNotFound
	}
	delete(r.trades, id)
	ids := r.owners[t.UserID]
	for i, tid := range ids {
		if tid == id {
			r.owners[t.UserID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func TestCreate_DerivesOutcomeAndAppendsOnce(t *testing.T) {
	t.Parallel()

	repo := newFakeTradeRepo(7)
	svc := NewTradeService(repo)

	created, err := svc.Create(context.Background(), 7, TradeFields{
		Pair:    "EURUSD",
		PAndL:   "50",
		Outcome: "Lose", // client input must be ignored
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeWin, created.Outcome)

	require.Len(t, repo.owners[7], 1)
	assert.Equal(t, created.ID, repo.owners[7][0])
}

func TestCreate_NonNumericPnLRejected(t *testing.T) {
	t.Parallel()

	repo := newFakeTradeRepo(7)
	svc := NewTradeService(repo)

	_, err := svc.Create(context.Background(), 7, TradeFields{PAndL: "lots"})
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err), "want ValidationError, got %v", err)
	assert.Empty(t, repo.trades)
}

func TestCreate_UnknownOwner(t *testing.T) {
	t.Parallel()

	repo := newFakeTradeRepo()
	svc := NewTradeService(repo)

	_, err := svc.Create(context.Background(), 99, TradeFields{PAndL: "1"})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err), "want NotFoundError, got %v", err)
}

func TestUpdate_RecomputesOutcome(t *testing.T) {
	t.Parallel()

	repo := newFakeTradeRepo(7)
	svc := NewTradeService(repo)

	created, err := svc.Create(context.Background(), 7, TradeFields{PAndL: "50"})
	require.NoError(t, err)

	err = svc.Update(context.Background(), created.ID, TradeFields{
		PAndL:   "-25",
		Outcome: "Win", // must be ignored in favor of the recomputed value
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeLose, got.Outcome)
	assert.Equal(t, "-25", got.PAndL)
}

func TestDelete_RemovesFromOwnerList(t *testing.T) {
	t.Parallel()

	repo := newFakeTradeRepo(7)
	svc := NewTradeService(repo)

	created, err := svc.Create(context.Background(), 7, TradeFields{PAndL: "10"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, repo.owners[7])

	err = svc.Delete(context.Background(), created.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestStats_EndToEnd(t *testing.T) {
	t.Parallel()

	repo := newFakeTradeRepo(7)
	svc := NewTradeService(repo)

	for _, pnl := range []string{"100", "-50", "0"} {
		_, err := svc.Create(context.Background(), 7, TradeFields{
			PAndL: StringOrNumber(pnl), Volume: "1", RiskReward: "2",
		})
		require.NoError(t, err)
	}

	stats, err := svc.Stats(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(50), stats.SumPnL)
	assert.Equal(t, 3, stats.TotalTradeCount)
	assert.InDelta(t, 100.0/3.0, stats.WinLossRatio, 1e-9)
}
