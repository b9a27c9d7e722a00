package quote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goquote/internal/common"
	"goquote/internal/slotstore"
)

func TestSurface_InitialRead(t *testing.T) {
	bridge, _ := newTestBridge(t, slotstore.NewMemory().View())
	require.NoError(t, bridge.Set("c1", sampleRef()))

	surface := bridge.Observe("c1", nil)
	defer surface.Close()

	assert.Equal(t, QuotePending, surface.State())
	assert.Equal(t, 1, surface.Reads())
	require.NotNil(t, surface.Reference())
	assert.Equal(t, "p1", surface.Reference().PostID)

	empty := bridge.Observe("c2", nil)
	defer empty.Close()
	assert.Equal(t, NoQuote, empty.State())
	assert.Nil(t, empty.Reference())
}

func TestSurface_StateTransitions(t *testing.T) {
	bridge, _ := newTestBridge(t, slotstore.NewMemory().View())

	var seen []*common.QuotedReference
	surface := bridge.Observe("c1", func(ref *common.QuotedReference) {
		seen = append(seen, ref)
	})
	defer surface.Close()
	assert.Equal(t, NoQuote, surface.State())

	require.NoError(t, bridge.Set("c1", sampleRef()))
	assert.Equal(t, QuotePending, surface.State())

	replacement := sampleRef()
	replacement.PostID = "p2"
	require.NoError(t, bridge.Set("c1", replacement))
	assert.Equal(t, "p2", surface.Reference().PostID)

	require.NoError(t, bridge.Clear("c1"))
	assert.Equal(t, NoQuote, surface.State())
	assert.Nil(t, surface.Reference())

	require.Len(t, seen, 4)
	assert.Nil(t, seen[0])
	assert.Equal(t, "p1", seen[1].PostID)
	assert.Equal(t, "p2", seen[2].PostID)
	assert.Nil(t, seen[3])
}

func TestSurface_ChannelsAreIsolated(t *testing.T) {
	bridge, _ := newTestBridge(t, slotstore.NewMemory().View())

	c1 := bridge.Observe("c1", nil)
	defer c1.Close()
	c2 := bridge.Observe("c2", nil)
	defer c2.Close()

	require.NoError(t, bridge.Set("c2", common.QuotedReference{PostID: "p9", ChannelID: "c2"}))

	assert.Equal(t, 1, c1.Reads())
	assert.Equal(t, NoQuote, c1.State())
	assert.Equal(t, 2, c2.Reads())
	assert.Equal(t, QuotePending, c2.State())
}

func TestSurface_UpdateFiltering(t *testing.T) {
	bridge, _ := newTestBridge(t, slotstore.NewMemory().View())
	surface := bridge.Observe("c1", nil)
	defer surface.Close()

	require.NoError(t, surface.Update(common.QuoteEvent{Source: common.SourceLocal, ChannelID: "c2"}))
	require.NoError(t, surface.Update(common.QuoteEvent{Source: common.SourceStorage, ChannelID: "c1", Key: "quoted_post_c2"}))
	assert.Equal(t, 1, surface.Reads())

	require.NoError(t, surface.Update(common.QuoteEvent{Source: common.SourceStorage, Key: "quoted_post_c1"}))
	require.NoError(t, surface.Update(common.QuoteEvent{Source: common.SourceLocal, ChannelID: "c1"}))
	assert.Equal(t, 3, surface.Reads())

	assert.Error(t, surface.Update(common.QuoteEvent{Source: "mystery", ChannelID: "c1"}))
}

func TestSurface_StorageEventFromOtherDocument(t *testing.T) {
	store := slotstore.NewMemory()
	tab1, _ := newTestBridge(t, store.View())
	tab2, _ := newTestBridge(t, store.View())

	surface := tab2.Observe("c1", nil)
	defer surface.Close()

	require.NoError(t, tab1.Set("c1", sampleRef()))
	assert.Equal(t, NoQuote, surface.State())

	tab2.HandleStorageChange(SlotKey("c1"))
	require.Eventually(t, func() bool { return surface.State() == QuotePending }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "p1", surface.Reference().PostID)
}

func TestSurface_Close(t *testing.T) {
	bridge, bus := newTestBridge(t, slotstore.NewMemory().View())

	a := bridge.Observe("c1", nil)
	b := bridge.Observe("c1", nil)
	assert.NotEqual(t, a.Name(), b.Name())
	assert.Equal(t, 2, bus.ObserverCount("c1"))

	a.Close()
	require.NoError(t, bridge.Set("c1", sampleRef()))
	assert.Equal(t, 1, a.Reads())
	assert.Equal(t, 2, b.Reads())
	b.Close()
	assert.Zero(t, bus.ObserverCount("c1"))
}

func TestQuoteState_String(t *testing.T) {
	assert.Equal(t, "no_quote", NoQuote.String())
	assert.Equal(t, "quote_pending", QuotePending.String())
}
