package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveEnd(t *testing.T) {
	ranged := TemporalEvent{StartTime: 10, EndTime: End(25)}
	assert.Equal(t, 25.0, ranged.EffectiveEnd())
	assert.False(t, ranged.IsPoint())

	point := TemporalEvent{StartTime: 10}
	assert.Equal(t, 11.0, point.EffectiveEnd())
	assert.True(t, point.IsPoint())
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "reflet-vous",
		(&TemporalEvent{Data: map[string]interface{}{"label": "reflet-vous"}}).Label())
	assert.Equal(t, "legacy",
		(&TemporalEvent{Data: map[string]interface{}{"tag": "legacy"}}).Label())
	assert.Equal(t, "new",
		(&TemporalEvent{Data: map[string]interface{}{"label": "new", "tag": "legacy"}}).Label())
	assert.Empty(t, (&TemporalEvent{}).Label())
	assert.Empty(t, (&TemporalEvent{Data: map[string]interface{}{"label": 42}}).Label())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(TemporalEvent{Id: "ok", StartTime: 0}))
	assert.NoError(t, Validate(TemporalEvent{Id: "ok", StartTime: 5, EndTime: End(5)}))

	var invalid *InvalidEventError

	err := Validate(TemporalEvent{Id: "neg", StartTime: -1})
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "neg", invalid.Id)

	err = Validate(TemporalEvent{Id: "inv", StartTime: 10, EndTime: End(5)})
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "inv", invalid.Id)
}

func TestPatchApply(t *testing.T) {
	base := TemporalEvent{
		Id:        "e1",
		Type:      "tag",
		StartTime: 10,
		EndTime:   End(20),
		Data:      map[string]interface{}{"label": "old", "keep": "yes"},
		Metadata:  Metadata{Category: "markers"},
	}

	patched := Patch{
		StartTime: End(12),
		Data:      map[string]interface{}{"label": "new"},
	}.Apply(base)

	assert.Equal(t, 12.0, patched.StartTime)
	assert.Equal(t, 20.0, *patched.EndTime)
	assert.Equal(t, "new", patched.Data["label"])
	assert.Equal(t, "yes", patched.Data["keep"])
	assert.Equal(t, "markers", patched.Metadata.Category)

	// The original is untouched
	assert.Equal(t, 10.0, base.StartTime)
	assert.Equal(t, "old", base.Data["label"])
}

func TestPatchApply_EmptyPatchIsNoop(t *testing.T) {
	base := TemporalEvent{Id: "e1", StartTime: 10, Data: map[string]interface{}{"k": "v"}}

	assert.Equal(t, base, Patch{}.Apply(base))
}

func TestPatchApply_ReplacesMetadata(t *testing.T) {
	base := TemporalEvent{Id: "e1", StartTime: 10, Metadata: Metadata{Category: "old", Priority: 1}}

	patched := Patch{Metadata: &Metadata{Category: "new"}}.Apply(base)

	assert.Equal(t, "new", patched.Metadata.Category)
	assert.Zero(t, patched.Metadata.Priority)
}
