package competitionservice_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	competitionservice "github.com/Black-And-White-Club/tripquest/app/modules/competition/application"
	competitiondomain "github.com/Black-And-White-Club/tripquest/app/modules/competition/domain"
	competitionevents "github.com/Black-And-White-Club/tripquest/app/modules/competition/domain/events"
	competitioneventbus "github.com/Black-And-White-Club/tripquest/app/modules/competition/infrastructure/eventbus"
	competitionmetrics "github.com/Black-And-White-Club/tripquest/app/modules/competition/infrastructure/metrics"
	competitiondb "github.com/Black-And-White-Club/tripquest/app/modules/competition/infrastructure/repositories"
	competitionmigrations "github.com/Black-And-White-Club/tripquest/app/modules/competition/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/tripquest/integration_tests/containers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestCompetitionService_Postgres(t *testing.T) {
	containers.SkipUnlessEnabled(t)
	ctx := context.Background()

	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(containers.Postgres(t))))
	db := bun.NewDB(pgdb, pgdialect.New())
	t.Cleanup(func() { db.Close() })

	migrator := migrate.NewMigrator(db, competitionmigrations.Migrations)
	require.NoError(t, migrator.Init(ctx))
	_, err := migrator.Migrate(ctx)
	require.NoError(t, err)

	repo := competitiondb.NewRepository(db)
	require.NoError(t, repo.UpsertParticipants(ctx, nil, []competitiondb.Participant{
		{ID: "u-alice", FullName: "Alice Smith"},
		{ID: "u-bob", FullName: "Bob Jones"},
	}))
	require.NoError(t, repo.SavePage(ctx, nil, "roster", "Night Bus\nAlice Smith\nBob Jones"))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pubsub := competitioneventbus.NewLocalPublisher(logger)
	t.Cleanup(func() { pubsub.Close() })
	events, err := pubsub.Subscribe(ctx, competitionevents.SubmissionStatusChangedV1)
	require.NoError(t, err)

	pages := competitionservice.Pages{Document: "competition", Roster: "roster"}
	newService := func() *competitionservice.CompetitionService {
		return competitionservice.NewCompetitionService(
			repo, pubsub, logger, competitionmetrics.NewNoop(),
			noop.NewTracerProvider().Tracer("test"), db, pages,
		)
	}
	svc := newService()

	c, err := svc.CreateChallenge(ctx, nil)
	require.NoError(t, err)
	stars := 5.0
	_, err = svc.UpdateChallenge(ctx, c.ID, competitiondomain.ChallengeEdit{Stars: &stars})
	require.NoError(t, err)

	approved := competitiondomain.StatusApproved
	_, err = svc.SetSubmissionStatus(ctx, competitiondomain.SubmissionParams{
		TeamID: "bus-night-bus-1", ChallengeID: c.ID, Status: &approved,
	})
	require.NoError(t, err)

	select {
	case msg := <-events:
		msg.Ack()
		assert.Equal(t, "approved", gjson.GetBytes(msg.Payload, "state").String())
		assert.Equal(t, "bus-night-bus-1", gjson.GetBytes(msg.Payload, "teamId").String())
	case <-time.After(5 * time.Second):
		t.Fatal("no submission event received")
	}

	leader := "u-bob"
	_, err = svc.SetTeamLeader(ctx, "bus-night-bus-1", &leader)
	require.NoError(t, err)

	// A fresh service sees everything the first one saved.
	rows, err := newService().Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].Stars)
	require.NotNil(t, rows[0].Team.LeaderID)
	assert.Equal(t, "u-bob", *rows[0].Team.LeaderID)
}
