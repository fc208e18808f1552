package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordProviderCall(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordProviderCall(context.Background(), "getVilageFcst", "success", 120*time.Millisecond)
	m.RecordProviderCall(context.Background(), "getVilageFcst", "success", 80*time.Millisecond)
	m.RecordProviderCall(context.Background(), "getVilageFcst", "timeout", 2*time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ProviderRequests.WithLabelValues("getVilageFcst", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderRequests.WithLabelValues("getVilageFcst", "timeout")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ProviderDuration))
}

func TestNewMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	assert.Panics(t, func() { NewMetrics(reg) })
}
