package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RestRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gte_rest_requests_total",
		Help: "REST requests by method and status code (0 for transport failures)",
	}, []string{"method", "status"})

	RestRetries = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gte_rest_retries_total",
		Help: "REST attempts repeated after a transport error",
	})

	RestCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gte_rest_cache_hits_total",
		Help: "GET responses served from the response cache",
	})

	RestLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "gte_rest_latency_seconds",
		Help:    "Latency of a single REST attempt",
		Buckets: prometheus.DefBuckets,
	})

	ContractReads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gte_contract_reads_total",
		Help: "eth_call reads by method and result",
	}, []string{"method", "result"})
)

func init() {
	prometheus.MustRegister(
		RestRequests,
		RestRetries,
		RestCacheHits,
		RestLatency,
		ContractReads,
	)
}
