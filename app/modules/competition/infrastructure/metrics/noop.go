package competitionmetrics

import (
	"context"
	"time"
)

// NoopMetrics discards everything.
type NoopMetrics struct{}

func NewNoop() CompetitionMetrics { return NoopMetrics{} }

func (NoopMetrics) RecordOperationAttempt(context.Context, string, string) {}
func (NoopMetrics) RecordOperationSuccess(context.Context, string, string) {}
func (NoopMetrics) RecordOperationFailure(context.Context, string, string) {}
func (NoopMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (NoopMetrics) RecordDroppedRows(context.Context, int) {}
func (NoopMetrics) RecordUnresolvedNames(context.Context, int) {}
func (NoopMetrics) RecordPersistenceFailure(context.Context, string) {}
