package metricskey

import "github.com/effective-security/metrics"

// Perf
var (
	// PerfJWSOperation is perf metric
	PerfJWSOperation = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_jws",
		Help:         "perf_jws provides the sample metrics of JWS sign and verify operations",
		RequiredTags: []string{"alg", "action"},
	}
)

// Stats
var (
	// StatsJWSVerifyFailed is counter metric
	StatsJWSVerifyFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "jws_verify_failed",
		Help:         "jws_verify_failed provides the counter of rejected tokens",
		RequiredTags: []string{"alg", "reason"},
	}
)

// Metrics returns slice of metrics from this repo
var Metrics = []*metrics.Describe{
	&PerfJWSOperation,
	&StatsJWSVerifyFailed,
}
