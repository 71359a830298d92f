package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSearchRequestsCounter(t *testing.T) {
	before := testutil.ToFloat64(SearchRequests.WithLabelValues("pubmed", "ok"))
	SearchRequests.WithLabelValues("pubmed", "ok").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(SearchRequests.WithLabelValues("pubmed", "ok")))
}

func TestObserveUpstream(t *testing.T) {
	ObserveUpstream("pubmed", "efetch", time.Now().Add(-10*time.Millisecond))
	assert.Equal(t, 1, testutil.CollectAndCount(UpstreamLatency, "curalink_upstream_request_duration_seconds"))
}
