package contact

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission paths.
const (
	PathAPI   = "api"
	PathRelay = "relay"
)

// Submission results.
const (
	ResultAccepted = "accepted"
	ResultInvalid  = "invalid"
	ResultFailed   = "failed"
)

var submissions = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "contact_submissions_total",
		Help: "Number of contact submissions, differentiated by path and result.",
	},
	[]string{"path", "result"},
)

// Observe counts one submission attempt.
func Observe(path, result string) {
	submissions.WithLabelValues(path, result).Inc()
}
