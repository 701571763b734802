package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxmetric/call-timeline/internal/core/event"
	"github.com/voxmetric/call-timeline/internal/core/layout"
)

func TestLayoutCache_MemoizesIdenticalInputs(t *testing.T) {
	c := NewLayoutCache()
	events := []event.TemporalEvent{
		{Id: "a", StartTime: 0, EndTime: event.End(10)},
		{Id: "b", StartTime: 5, EndTime: event.End(15)},
	}
	profile := layout.DefaultProfile()

	first := c.Pack(events, 1000, 100, profile)
	assert.Equal(t, 1, c.Len())

	again := c.Pack(events, 1000, 100, profile)
	assert.Equal(t, first, again)
	assert.Equal(t, 1, c.Len())
}

func TestLayoutCache_DistinctInputsGetDistinctEntries(t *testing.T) {
	c := NewLayoutCache()
	events := []event.TemporalEvent{{Id: "a", StartTime: 0}}
	profile := layout.DefaultProfile()

	c.Pack(events, 1000, 100, profile)
	c.Pack(events, 800, 100, profile)
	c.Pack(events, 1000, 200, profile)
	c.Pack([]event.TemporalEvent{{Id: "b", StartTime: 0}}, 1000, 100, profile)

	assert.Equal(t, 4, c.Len())
}

func TestLayoutCache_EventTimeChangesKey(t *testing.T) {
	c := NewLayoutCache()
	profile := layout.DefaultProfile()

	res1 := c.Pack([]event.TemporalEvent{{Id: "a", StartTime: 10}}, 1000, 100, profile)
	res2 := c.Pack([]event.TemporalEvent{{Id: "a", StartTime: 20}}, 1000, 100, profile)

	assert.Equal(t, 2, c.Len())
	require.Len(t, res1.Items, 1)
	require.Len(t, res2.Items, 1)
	assert.NotEqual(t, res1.Items[0].X, res2.Items[0].X)
}

func TestLayoutCache_PointAndRangedEventsDiffer(t *testing.T) {
	c := NewLayoutCache()
	profile := layout.DefaultProfile()

	c.Pack([]event.TemporalEvent{{Id: "a", StartTime: 10}}, 1000, 100, profile)
	c.Pack([]event.TemporalEvent{{Id: "a", StartTime: 10, EndTime: event.End(30)}}, 1000, 100, profile)

	assert.Equal(t, 2, c.Len())
}

func TestLayoutCache_MatchesDirectPack(t *testing.T) {
	c := NewLayoutCache()
	events := []event.TemporalEvent{
		{Id: "a", StartTime: 0, EndTime: event.End(50)},
		{Id: "b", StartTime: 10, EndTime: event.End(60)},
		{Id: "c", StartTime: 70},
	}
	profile := layout.DefaultProfile()

	cached := c.Pack(events, 1000, 100, profile)
	direct := layout.Pack(events, 1000, 100, profile)

	assert.Equal(t, direct, cached)
}

func TestLayoutCache_ConcurrentHits(t *testing.T) {
	c := NewLayoutCache()
	events := []event.TemporalEvent{
		{Id: "a", StartTime: 0, EndTime: event.End(10)},
		{Id: "b", StartTime: 5, EndTime: event.End(15)},
	}
	profile := layout.DefaultProfile()
	expected := c.Pack(events, 1000, 100, profile)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.Equal(t, expected, c.Pack(events, 1000, 100, profile))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, c.Len())
}

func TestLayoutCache_Clear(t *testing.T) {
	c := NewLayoutCache()
	c.Pack([]event.TemporalEvent{{Id: "a", StartTime: 0}}, 1000, 100, layout.DefaultProfile())
	require.Equal(t, 1, c.Len())

	c.Clear()

	assert.Equal(t, 0, c.Len())
}
