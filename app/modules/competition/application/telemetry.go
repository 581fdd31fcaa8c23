package competitionservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	competitiondomain "github.com/Black-And-White-Club/tripquest/app/modules/competition/domain"
	competitionevents "github.com/Black-And-White-Club/tripquest/app/modules/competition/domain/events"
	"github.com/Black-And-White-Club/tripquest/pkg/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps an operation with a span, metrics, logs and panic recovery.
func withTelemetry[S any, F any](
	s *CompetitionService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, "Operation triggered", slog.String("operation", operationName))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("identifier", identifier),
				slog.Any("error", err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			slog.String("operation", operationName),
			slog.String("identifier", identifier),
			slog.Any("error", wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			slog.String("operation", operationName),
			slog.String("identifier", identifier),
			slog.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			slog.String("operation", operationName),
			slog.String("identifier", identifier),
		)
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	return result, nil
}

// runInTx runs fn inside a transaction, or directly when no database is set.
func runInTx[S any, F any](
	s *CompetitionService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})
	return result, err
}

// mutation is what a write produces: the next document, the caller's result
// and the events to emit once the document is saved.
type mutation[S any] struct {
	doc    competitiondomain.Document
	result results.OperationResult[S, error]
	events []competitionevents.Event
}

type mutateFunc[S any] func(ctx context.Context, db bun.IDB, doc competitiondomain.Document) (mutation[S], error)

func failed[S any](err error) mutation[S] {
	return mutation[S]{result: results.FailureResult[S, error](err)}
}

// applyWrite runs fn as the next write in line. A domain failure leaves the
// document untouched. Otherwise the new document replaces the in-memory one
// before it is saved, and stays there if the save fails.
func applyWrite[S any](s *CompetitionService, ctx context.Context, fn mutateFunc[S]) (results.OperationResult[S, error], error) {
	if err := s.writes.acquire(ctx); err != nil {
		return results.OperationResult[S, error]{}, err
	}
	defer s.writes.release()

	var (
		events []competitionevents.Event
		saved  bool
	)
	result, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[S, error], error) {
		doc, err := s.current(ctx, db)
		if err != nil {
			return results.OperationResult[S, error]{}, err
		}

		m, err := fn(ctx, db, doc)
		if err != nil || m.result.IsFailure() {
			return m.result, err
		}

		s.setDocument(m.doc)
		if err := s.repo.SavePage(ctx, db, s.pages.Document, competitiondomain.Encode(m.doc)); err != nil {
			s.metrics.RecordPersistenceFailure(ctx, s.pages.Document)
			return results.OperationResult[S, error]{}, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		saved = true
		events = m.events
		return m.result, nil
	})
	if err != nil {
		if saved && !errors.Is(err, ErrPersistence) {
			s.metrics.RecordPersistenceFailure(ctx, s.pages.Document)
			err = fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		return results.OperationResult[S, error]{}, err
	}

	s.publish(ctx, events)
	return result, nil
}

// unwrap turns an operation result into the public (value, error) form.
func unwrap[S any](result results.OperationResult[S, error], err error) (S, error) {
	var zero S
	if err != nil {
		return zero, err
	}
	if result.IsFailure() {
		return zero, *result.Failure
	}
	if result.Success == nil {
		return zero, nil
	}
	return *result.Success, nil
}
