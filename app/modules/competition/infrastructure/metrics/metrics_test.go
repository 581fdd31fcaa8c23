package competitionmetrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMetrics(reg, "")
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordOperationAttempt(ctx, "CreateChallenge", "CompetitionService")
	m.RecordOperationAttempt(ctx, "CreateChallenge", "CompetitionService")
	m.RecordOperationSuccess(ctx, "CreateChallenge", "CompetitionService")
	m.RecordOperationFailure(ctx, "CreateChallenge", "CompetitionService")
	m.RecordOperationDuration(ctx, "CreateChallenge", "CompetitionService", 15*time.Millisecond)
	m.RecordDroppedRows(ctx, 3)
	m.RecordDroppedRows(ctx, 0)
	m.RecordUnresolvedNames(ctx, 2)
	m.RecordPersistenceFailure(ctx, "competition")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.attempts.WithLabelValues("CreateChallenge", "CompetitionService")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.successes.WithLabelValues("CreateChallenge", "CompetitionService")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("CreateChallenge", "CompetitionService")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.droppedRows))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.unresolvedNames))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.persistenceFailures.WithLabelValues("competition")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestNewPrometheusMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusMetrics(reg, "tripquest")
	require.NoError(t, err)

	_, err = NewPrometheusMetrics(reg, "tripquest")
	assert.Error(t, err)
}
