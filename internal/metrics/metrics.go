package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ecopia-map/quadtree_indexer/internal/quadtree"
)

const (
	namespace  = "quadtree"
	depthLabel = "depth"
)

// Prometheus instrumentation of a tree. Registered on its own registry so that several trees, or
// tests, don't collide on the default one.
type TreeMetrics struct {
	registry *prometheus.Registry

	insertedPoints prometheus.Counter
	subdivisions   *prometheus.CounterVec
	rejected       prometheus.Counter
	maxDepth       prometheus.Gauge

	mu            sync.Mutex
	maxDepthValue int
}

func NewTreeMetrics() *TreeMetrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &TreeMetrics{
		registry: registry,
		insertedPoints: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inserted_points_total",
			Help:      "The total number of points stored in the tree.",
		}),
		subdivisions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subdivisions_total",
			Help:      "The total number of node subdivisions, by depth of the subdivided node.",
		}, []string{depthLabel}),
		rejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_points_total",
			Help:      "The total number of points rejected for being out of bounds.",
		}),
		maxDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "max_depth",
			Help:      "The depth of the deepest node storing a point.",
		}),
	}
}

func (m *TreeMetrics) PointInserted(depth int) {
	m.insertedPoints.Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	if depth > m.maxDepthValue {
		m.maxDepthValue = depth
		m.maxDepth.Set(float64(depth))
	}
}

func (m *TreeMetrics) NodeSubdivided(depth int) {
	m.subdivisions.
		With(prometheus.Labels{depthLabel: strconv.Itoa(depth)}).
		Inc()
}

func (m *TreeMetrics) InsertRejected() {
	m.rejected.Inc()
}

func (m *TreeMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Writes the metrics in the text exposition format, for the node exporter textfile collector
func (m *TreeMetrics) WriteToTextfile(filename string) error {
	return prometheus.WriteToTextfile(filename, m.registry)
}

var _ quadtree.TreeObserver = (*TreeMetrics)(nil)
