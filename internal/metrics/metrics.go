package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all Campus Navigator metrics
const namespace = "campusnav"

// Registry is the global Prometheus registry for all metrics
var Registry = prometheus.NewRegistry()

// AppInfo is a gauge that exposes application version information as labels
var AppInfo = promauto.With(Registry).NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "app_info",
		Help:      "Application version information (always set to 1, version info in labels)",
	},
	[]string{"version", "commit", "build_date"},
)

// Session metrics
var (
	// SessionsCreatedTotal counts sessions minted on successful login
	SessionsCreatedTotal = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_created_total",
			Help:      "Total number of admin sessions created",
		},
	)

	// SessionsExpiredTotal counts sessions removed because their expiry had
	// passed, whether lazily at lookup or via a manual sweep
	SessionsExpiredTotal = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_expired_total",
			Help:      "Total number of admin sessions removed after expiry",
		},
	)
)

// Store metrics
var (
	// StoreEventsTotal tracks the number of events in the catalog file as of
	// the last successful write
	StoreEventsTotal = promauto.With(Registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_events_total",
			Help:      "Number of events in the catalog as of the last write",
		},
	)

	// StoreReadFailuresTotal counts swallowed read/parse failures
	StoreReadFailuresTotal = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_read_failures_total",
			Help:      "Total number of catalog file read or parse failures",
		},
	)

	// StoreWriteFailuresTotal counts best-effort writes that failed
	StoreWriteFailuresTotal = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_write_failures_total",
			Help:      "Total number of catalog file write failures",
		},
	)
)

// Init sets application info metrics and registers Go runtime collectors.
// Call once at startup.
func Init(version, gitCommit, buildDate string) {
	AppInfo.WithLabelValues(version, gitCommit, buildDate).Set(1)

	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}
