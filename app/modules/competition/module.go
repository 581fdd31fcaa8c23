package competition

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	competitionservice "github.com/Black-And-White-Club/tripquest/app/modules/competition/application"
	competitionhandlers "github.com/Black-And-White-Club/tripquest/app/modules/competition/infrastructure/handlers"
	competitionmetrics "github.com/Black-And-White-Club/tripquest/app/modules/competition/infrastructure/metrics"
	competitiondb "github.com/Black-And-White-Club/tripquest/app/modules/competition/infrastructure/repositories"
	"github.com/Black-And-White-Club/tripquest/config"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// Module represents the competition module.
type Module struct {
	Service    competitionservice.Service
	cancelFunc context.CancelFunc
	logger     *slog.Logger
}

// Deps are the shared resources the module is built on. Publisher and
// Registerer may be nil.
type Deps struct {
	Logger     *slog.Logger
	Tracer     trace.Tracer
	Registerer prometheus.Registerer
	Publisher  message.Publisher
	DB         *bun.DB
	HTTPRouter chi.Router
}

// NewCompetitionModule creates and initializes the competition module and
// mounts its HTTP routes when a router is given.
func NewCompetitionModule(ctx context.Context, cfg *config.Config, deps Deps) (*Module, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "competition.NewCompetitionModule initializing")

	repo := competitiondb.NewRepository(deps.DB)

	var metrics competitionmetrics.CompetitionMetrics = competitionmetrics.NewNoop()
	if deps.Registerer != nil {
		m, err := competitionmetrics.NewPrometheusMetrics(deps.Registerer, cfg.Observability.MetricsNamespace)
		if err != nil {
			return nil, fmt.Errorf("failed to register competition metrics: %w", err)
		}
		metrics = m
	}

	service := competitionservice.NewCompetitionService(
		repo,
		deps.Publisher,
		logger,
		metrics,
		deps.Tracer,
		deps.DB,
		competitionservice.Pages{
			Document: cfg.Competition.DocumentPage,
			Roster:   cfg.Competition.RosterPage,
		},
	)

	if deps.HTTPRouter != nil {
		handlers := competitionhandlers.NewCompetitionHandlers(service, logger, deps.Tracer)
		var limiter *competitionhandlers.IPRateLimiter
		if cfg.HTTP.RateLimit > 0 {
			limiter = competitionhandlers.NewIPRateLimiter(rate.Limit(cfg.HTTP.RateLimit), cfg.HTTP.RateBurst)
		}
		competitionhandlers.RegisterRoutes(deps.HTTPRouter, handlers, cfg.HTTP.AllowedOrigins, limiter)
	}

	return &Module{
		Service: service,
		logger:  logger,
	}, nil
}

// Run loads the document once so that the first request does not pay for
// it, then blocks until ctx is done.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting competition module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if doc, err := m.Service.Document(ctx); err != nil {
		m.logger.ErrorContext(ctx, "Failed to preload competition document", slog.Any("error", err))
	} else {
		m.logger.InfoContext(ctx, "Competition document loaded",
			slog.Int("challenges", len(doc.Challenges)),
			slog.Int("submissions", len(doc.Submissions)),
		)
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Competition module goroutine stopped")
}

// Close shuts down the competition module.
func (m *Module) Close() error {
	m.logger.Info("Stopping competition module")
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	m.logger.Info("Competition module stopped")
	return nil
}
