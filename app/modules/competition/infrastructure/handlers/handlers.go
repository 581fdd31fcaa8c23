package competitionhandlers

import (
	"log/slog"

	competitionservice "github.com/Black-And-White-Club/tripquest/app/modules/competition/application"
	"go.opentelemetry.io/otel/trace"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// CompetitionHandlers implements the Handlers interface.
type CompetitionHandlers struct {
	service competitionservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewCompetitionHandlers creates a new CompetitionHandlers instance.
func NewCompetitionHandlers(
	service competitionservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompetitionHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}
