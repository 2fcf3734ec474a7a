package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chem_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chem_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReportBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chem_report_build_duration_seconds",
			Help:    "Time spent assembling the detailed report",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
	)

	ReportFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chem_report_failures_total",
			Help: "Detailed report builds that failed",
		},
	)

	AlertEvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chem_alert_evaluations_total",
			Help: "Alert evaluations by result",
		},
		[]string{"result"},
	)

	LowStockChemicals = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chem_low_stock_chemicals",
			Help: "Chemicals below the low-stock threshold at the last evaluation",
		},
	)

	ExpiringChemicals = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chem_expiring_chemicals",
			Help: "Chemicals expiring within the alert window at the last evaluation",
		},
	)

	AlertFeedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chem_alert_feed_clients",
			Help: "Connected alert websocket clients",
		},
	)

	ReportArchivesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chem_report_archives_total",
			Help: "Report archive uploads by result",
		},
		[]string{"result"},
	)

	// Host
	CPUPercent = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chem_host_cpu_percent",
		Help: "Host CPU utilisation",
	})
	MemoryPercent = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chem_host_memory_percent",
		Help: "Host memory utilisation",
	})
	DiskPercent = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chem_host_disk_percent",
		Help: "Root filesystem utilisation",
	})
)
