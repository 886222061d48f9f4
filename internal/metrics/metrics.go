// Package metrics exports Prometheus metrics about observable collections.
//
// Track subscribes to a collection and turns every change it publishes into
// counter and gauge updates labelled with the collection's name.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var changesPublished = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "orderly_changes_published_total",
	Help: "Number of changes published by a collection",
}, []string{"collection", "kind"})

var elementsAdded = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "orderly_elements_added_total",
	Help: "Number of elements reported as added",
}, []string{"collection"})

var elementsRemoved = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "orderly_elements_removed_total",
	Help: "Number of elements reported as removed",
}, []string{"collection"})

var elementsCleared = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "orderly_elements_cleared_total",
	Help: "Number of elements dropped by full clears",
}, []string{"collection"})

var collectionSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "orderly_collection_size",
	Help: "Number of elements in a collection after its last change",
}, []string{"collection"})
