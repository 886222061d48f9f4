package metrics

import (
	"slices"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/dshills/orderly/internal/engine/hash"
	"github.com/dshills/orderly/internal/engine/tree"
	"github.com/dshills/orderly/internal/event"
	"github.com/dshills/orderly/internal/seq"
)

func TestTrack(t *testing.T) {
	m := tree.NewOrdered[int, string]()
	m.Put(1, "one")

	tr := Track[tree.Pair[int, string]](m, "track-test")
	assert.Equal(t, 1.0, testutil.ToFloat64(collectionSize.WithLabelValues("track-test")))
	assert.Equal(t, 0.0, testutil.ToFloat64(elementsAdded.WithLabelValues("track-test")))

	m.Put(2, "two")
	m.Put(2, "TWO")
	m.PutAll(slices.Values([]tree.Pair[int, string]{{Key: 3, Value: "three"}, {Key: 4, Value: "four"}}))
	m.RemoveKey(1)
	m.Clear()

	assert.Equal(t, 0.0, testutil.ToFloat64(collectionSize.WithLabelValues("track-test")))
	assert.Equal(t, 1.0+1+4, testutil.ToFloat64(elementsAdded.WithLabelValues("track-test")))
	assert.Equal(t, 2.0, testutil.ToFloat64(elementsRemoved.WithLabelValues("track-test")))
	assert.Equal(t, 2.0+3, testutil.ToFloat64(elementsCleared.WithLabelValues("track-test")))
	assert.Equal(t, 1.0, testutil.ToFloat64(changesPublished.WithLabelValues("track-test", "replace")))
	assert.Equal(t, 1.0, testutil.ToFloat64(changesPublished.WithLabelValues("track-test", "reset")))
	assert.Equal(t, 1.0, testutil.ToFloat64(changesPublished.WithLabelValues("track-test", "clear")))

	tr.Close()
	m.Put(9, "nine")
	assert.Equal(t, 1.0+1+4, testutil.ToFloat64(elementsAdded.WithLabelValues("track-test")))
}

func TestTrackUnorderedSet(t *testing.T) {
	s := hash.SetOf("a", "b")
	tr := Track[string](s, "track-set")
	defer tr.Close()

	s.AddAll(slices.Values([]string{"b", "c", "d"}))
	s.Remove("a")
	s.Replace(slices.Values([]string{"x"}))

	assert.Equal(t, 1.0, testutil.ToFloat64(collectionSize.WithLabelValues("track-set")))
	assert.Equal(t, 2.0+1, testutil.ToFloat64(elementsAdded.WithLabelValues("track-set")))
	assert.Equal(t, 1.0, testutil.ToFloat64(elementsRemoved.WithLabelValues("track-set")))
	assert.Equal(t, 3.0, testutil.ToFloat64(elementsCleared.WithLabelValues("track-set")))
	assert.Equal(t, 1.0, testutil.ToFloat64(changesPublished.WithLabelValues("track-set", "reset")))
}

func TestKind(t *testing.T) {
	one := seq.Of(1)
	tests := []struct {
		change event.Change[int]
		want   string
	}{
		{event.Cleared[int](3), "clear"},
		{event.ClearAndAdd[int](3, one), "reset"},
		{event.Add[int](one, 0), "add"},
		{event.Remove[int](one, 0), "remove"},
		{event.Replace[int](one, one, 0), "replace"},
		{event.Change[int]{}, "none"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, Kind(tc.change))
		})
	}
}
