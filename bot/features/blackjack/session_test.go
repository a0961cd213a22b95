package blackjack

import (
	"testing"
	"time"

	"cantina/blackjack"
	"cantina/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// steadySource deals the same card forever; table tests don't care about
// the hands.
type steadySource struct{}

func (steadySource) Draw() blackjack.Card {
	return blackjack.Card{Rank: "5", Suit: "♠"}
}

func newTestFeature(timeout time.Duration) (*Feature, *service.MockUserService) {
	users := new(service.MockUserService)
	f := New(users, Config{Stake: 10, Timeout: timeout}, func() blackjack.CardSource {
		return steadySource{}
	})
	return f, users
}

func newTestTable(f *Feature, userID int64, messageID string) *table {
	return &table{
		userID:    userID,
		game:      blackjack.NewGame(userID, f.config.Stake, f.newDeck()),
		messageID: messageID,
	}
}

func TestLookupTable(t *testing.T) {
	f, _ := newTestFeature(time.Hour)
	tbl := newTestTable(f, 1, "msg-1")
	require.Nil(t, f.openTable(nil, tbl))

	t.Run("owner on current message", func(t *testing.T) {
		assert.Same(t, tbl, f.lookupTable(1, "msg-1"))
	})

	t.Run("wrong user", func(t *testing.T) {
		assert.Nil(t, f.lookupTable(2, "msg-1"))
	})

	t.Run("stale message", func(t *testing.T) {
		assert.Nil(t, f.lookupTable(1, "msg-0"))
	})
}

func TestOpenTableReplacesExisting(t *testing.T) {
	f, users := newTestFeature(time.Hour)
	first := newTestTable(f, 1, "msg-1")
	require.Nil(t, f.openTable(nil, first))

	second := newTestTable(f, 1, "msg-2")
	old := f.openTable(nil, second)

	require.Same(t, first, old)
	assert.True(t, old.closed)
	assert.False(t, old.timer.Stop(), "replaced table's timer must already be stopped")

	// Only the new message routes to a table
	assert.Nil(t, f.lookupTable(1, "msg-1"))
	assert.Same(t, second, f.lookupTable(1, "msg-2"))

	// Replacing a mid-round table never settles it
	assert.Empty(t, users.Calls)
}

func TestCloseFreezesStatus(t *testing.T) {
	f, _ := newTestFeature(time.Hour)
	tbl := newTestTable(f, 1, "msg-1")
	require.Nil(t, f.openTable(nil, tbl))

	tbl.close()

	assert.True(t, tbl.closed)
	assert.Equal(t, tbl.game.Status, tbl.finalStatus)
	assert.False(t, f.touchTable(tbl), "closed table must not restart its timer")

	// Closing again is a no-op
	tbl.close()
	assert.True(t, tbl.closed)
}

func TestTouchTableRestartsTimer(t *testing.T) {
	f, _ := newTestFeature(time.Hour)
	tbl := newTestTable(f, 1, "msg-1")
	require.Nil(t, f.openTable(nil, tbl))

	assert.True(t, f.touchTable(tbl))
}

func TestTouchTableLosesRaceToFiredTimer(t *testing.T) {
	f, _ := newTestFeature(time.Hour)
	tbl := newTestTable(f, 1, "msg-1")

	fired := make(chan struct{})
	tbl.timer = time.AfterFunc(time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}

	assert.False(t, f.touchTable(tbl))
}

func TestRemoveTableOnExpiry(t *testing.T) {
	f, users := newTestFeature(time.Hour)
	tbl := newTestTable(f, 1, "msg-1")
	require.Nil(t, f.openTable(nil, tbl))

	require.True(t, f.removeTable(tbl))
	tbl.close()

	assert.Nil(t, f.lookupTable(1, "msg-1"))
	assert.False(t, f.removeTable(tbl), "second removal must be a no-op")

	// Abandoning a round leaves the ledger untouched
	assert.Empty(t, users.Calls)
}

func TestRemoveTableIgnoresSupersededTable(t *testing.T) {
	f, _ := newTestFeature(time.Hour)
	first := newTestTable(f, 1, "msg-1")
	require.Nil(t, f.openTable(nil, first))

	second := newTestTable(f, 1, "msg-2")
	f.openTable(nil, second)

	// A stale expiry for the replaced table must not evict the new one
	assert.False(t, f.removeTable(first))
	assert.Same(t, second, f.lookupTable(1, "msg-2"))
}
