package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of HTTP handlers, labeled by method and route
	HTTPRequestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "plantnet_http_request_latency_seconds",
		Help:    "Latency of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// Total orders placed through checkout
	OrdersPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "plantnet_orders_placed_total",
		Help: "Total number of orders placed",
	})

	// Total orders cancelled by customers
	OrdersCancelled = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "plantnet_orders_cancelled_total",
		Help: "Total number of orders cancelled",
	})

	// Total first-time user registrations
	UsersRegistered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "plantnet_users_registered_total",
		Help: "Total number of first-time user registrations",
	})
)

func Init() {
	prometheus.MustRegister(
		HTTPRequestLatency,
		OrdersPlaced,
		OrdersCancelled,
		UsersRegistered,
	)
}
