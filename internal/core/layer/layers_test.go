package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxmetric/call-timeline/internal/core/event"
)

func sampleEvents() []event.TemporalEvent {
	return []event.TemporalEvent{
		{Id: "t1", Type: "tag", StartTime: 5},
		{Id: "a1", Type: "annotation", StartTime: 10, EndTime: event.End(20)},
		{Id: "t2", Type: "tag", StartTime: 30},
		{Id: "n1", Type: "note", StartTime: 40},
	}
}

func TestBuildLayers_Configured(t *testing.T) {
	configs := []CategoryConfig{
		{Type: "tag", Name: "Tags", Enabled: true, Visible: true, Color: "#112233", Height: 30, Interactive: true},
		{Type: "annotation", Name: "Annotations", Enabled: true, Visible: true},
	}

	layers := BuildLayers(sampleEvents(), configs)

	require.Len(t, layers, 2)
	assert.Equal(t, "tag", layers[0].Id)
	assert.Equal(t, "Tags", layers[0].Name)
	assert.Equal(t, "#112233", layers[0].Color)
	assert.Equal(t, 30.0, layers[0].Height)
	assert.True(t, layers[0].Interactive)
	require.Len(t, layers[0].Events, 2)
	assert.Equal(t, "t1", layers[0].Events[0].Id)
	assert.Equal(t, "t2", layers[0].Events[1].Id)

	require.Len(t, layers[1].Events, 1)
	assert.Equal(t, "a1", layers[1].Events[0].Id)
}

func TestBuildLayers_ConfiguredDefaults(t *testing.T) {
	configs := []CategoryConfig{
		{Type: "annotation", Enabled: true, Visible: true},
		{Type: "tag", Enabled: true, Visible: true},
	}

	layers := BuildLayers(sampleEvents(), configs)

	require.Len(t, layers, 2)
	assert.Equal(t, "annotation", layers[0].Name)
	assert.Equal(t, 40.0, layers[0].Height)
	assert.Equal(t, "#f4b400", layers[0].Color)
	assert.Equal(t, 24.0, layers[1].Height)
	assert.Equal(t, "#4285f4", layers[1].Color)
}

func TestBuildLayers_SkipsDisabledAndHidden(t *testing.T) {
	configs := []CategoryConfig{
		{Type: "tag", Enabled: false, Visible: true},
		{Type: "annotation", Enabled: true, Visible: false},
		{Type: "note", Enabled: true, Visible: true},
	}

	layers := BuildLayers(sampleEvents(), configs)

	require.Len(t, layers, 1)
	assert.Equal(t, "note", layers[0].Id)
}

func TestBuildLayers_DeduplicatesConfiguredTypes(t *testing.T) {
	configs := []CategoryConfig{
		{Type: "tag", Name: "First", Enabled: true, Visible: true},
		{Type: "tag", Name: "Second", Enabled: true, Visible: true},
	}

	layers := BuildLayers(sampleEvents(), configs)

	require.Len(t, layers, 1)
	assert.Equal(t, "First", layers[0].Name)
}

func TestBuildLayers_AutomaticFallback(t *testing.T) {
	layers := BuildLayers(sampleEvents(), nil)

	require.Len(t, layers, 3)
	// First-seen order of the event types
	assert.Equal(t, "tag", layers[0].Id)
	assert.Equal(t, "annotation", layers[1].Id)
	assert.Equal(t, "note", layers[2].Id)
	assert.Len(t, layers[0].Events, 2)
	assert.True(t, layers[0].Visible)
}

func TestBuildLayers_FallsBackWhenConfigMatchesNothing(t *testing.T) {
	configs := []CategoryConfig{
		{Type: "transcript", Enabled: true, Visible: true},
	}

	layers := BuildLayers(sampleEvents(), configs)

	require.Len(t, layers, 3)
	assert.Equal(t, "tag", layers[0].Id)
}

func TestBuildLayers_EmptyEvents(t *testing.T) {
	assert.Empty(t, BuildLayers(nil, nil))

	configs := []CategoryConfig{{Type: "tag", Enabled: true, Visible: true}}
	layers := BuildLayers(nil, configs)
	require.Len(t, layers, 1)
	assert.Empty(t, layers[0].Events)
}

func TestBuildLayers_UnknownTypeGetsFallbackColor(t *testing.T) {
	events := []event.TemporalEvent{{Id: "x", Type: "custom", StartTime: 1}}

	layers := BuildLayers(events, nil)

	require.Len(t, layers, 1)
	assert.Equal(t, "#607d8b", layers[0].Color)
	assert.Equal(t, 24.0, layers[0].Height)
}

func TestSortByPriority(t *testing.T) {
	layers := []Layer{
		{Id: "note"},
		{Id: "tag"},
		{Id: "annotation"},
	}
	configs := []CategoryConfig{
		{Type: "tag", Priority: 1},
		{Type: "annotation", Priority: 2},
		{Type: "note", Priority: 3},
	}

	SortByPriority(layers, configs)

	assert.Equal(t, "tag", layers[0].Id)
	assert.Equal(t, "annotation", layers[1].Id)
	assert.Equal(t, "note", layers[2].Id)
}

func TestSortByPriority_UnconfiguredKeepsRelativeOrder(t *testing.T) {
	layers := []Layer{
		{Id: "b"},
		{Id: "a"},
		{Id: "tag"},
	}
	configs := []CategoryConfig{{Type: "tag", Priority: 5}}

	SortByPriority(layers, configs)

	// Unconfigured layers sort with priority zero, ahead of priority 5
	assert.Equal(t, "b", layers[0].Id)
	assert.Equal(t, "a", layers[1].Id)
	assert.Equal(t, "tag", layers[2].Id)
}
