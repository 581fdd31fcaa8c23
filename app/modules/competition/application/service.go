package competitionservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	competitiondomain "github.com/Black-And-White-Club/tripquest/app/modules/competition/domain"
	competitionevents "github.com/Black-And-White-Club/tripquest/app/modules/competition/domain/events"
	competitionmetrics "github.com/Black-And-White-Club/tripquest/app/modules/competition/infrastructure/metrics"
	competitiondb "github.com/Black-And-White-Club/tripquest/app/modules/competition/infrastructure/repositories"
	"github.com/Black-And-White-Club/tripquest/pkg/results"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "CompetitionService"

// Pages names the content store pages the service reads and writes.
type Pages struct {
	Document string
	Roster   string
}

// CompetitionService implements the Service interface.
type CompetitionService struct {
	repo      competitiondb.Repository
	publisher message.Publisher
	logger    *slog.Logger
	metrics   competitionmetrics.CompetitionMetrics
	tracer    trace.Tracer
	db        *bun.DB
	pages     Pages
	now       func() time.Time

	writes writeQueue

	mu     sync.RWMutex
	doc    competitiondomain.Document
	loaded bool
}

// NewCompetitionService creates a new CompetitionService. publisher may be nil,
// in which case no events are emitted.
func NewCompetitionService(
	repo competitiondb.Repository,
	publisher message.Publisher,
	logger *slog.Logger,
	metrics competitionmetrics.CompetitionMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	pages Pages,
) *CompetitionService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = competitionmetrics.NewNoop()
	}
	return &CompetitionService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		db:        db,
		pages:     pages,
		now:       time.Now,
	}
}

var _ Service = (*CompetitionService)(nil)

// -----------------------------------------------------------------------------
// Reads
// -----------------------------------------------------------------------------

// Document returns the in-memory document, loading it on first use.
func (s *CompetitionService) Document(ctx context.Context) (competitiondomain.Document, error) {
	result, err := withTelemetry(s, ctx, "Document", s.pages.Document, func(ctx context.Context) (results.OperationResult[competitiondomain.Document, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[competitiondomain.Document, error], error) {
			doc, err := s.current(ctx, db)
			if err != nil {
				return results.OperationResult[competitiondomain.Document, error]{}, err
			}
			return results.SuccessResult[competitiondomain.Document, error](doc), nil
		})
	})
	return unwrap(result, err)
}

// Reload replaces the in-memory document with the stored one. It waits for
// queued writes so that it never lands between a mutation and its save.
func (s *CompetitionService) Reload(ctx context.Context) (competitiondomain.Document, error) {
	result, err := withTelemetry(s, ctx, "Reload", s.pages.Document, func(ctx context.Context) (results.OperationResult[competitiondomain.Document, error], error) {
		if err := s.writes.acquire(ctx); err != nil {
			return results.OperationResult[competitiondomain.Document, error]{}, err
		}
		defer s.writes.release()

		doc, err := s.loadDocument(ctx, s.idb())
		if err != nil {
			return results.OperationResult[competitiondomain.Document, error]{}, err
		}
		s.setDocument(doc)
		return results.SuccessResult[competitiondomain.Document, error](doc), nil
	})
	return unwrap(result, err)
}

// Teams derives the current teams from the roster page and the directory.
func (s *CompetitionService) Teams(ctx context.Context) ([]competitiondomain.Team, error) {
	result, err := withTelemetry(s, ctx, "Teams", s.pages.Roster, func(ctx context.Context) (results.OperationResult[[]competitiondomain.Team, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]competitiondomain.Team, error], error) {
			doc, err := s.current(ctx, db)
			if err != nil {
				return results.OperationResult[[]competitiondomain.Team, error]{}, err
			}
			teams, err := s.deriveTeams(ctx, db, doc)
			if err != nil {
				return results.OperationResult[[]competitiondomain.Team, error]{}, err
			}
			return results.SuccessResult[[]competitiondomain.Team, error](teams), nil
		})
	})
	return unwrap(result, err)
}

// Leaderboard ranks the derived teams against the current document.
func (s *CompetitionService) Leaderboard(ctx context.Context) ([]competitiondomain.LeaderboardRow, error) {
	result, err := withTelemetry(s, ctx, "Leaderboard", s.pages.Document, func(ctx context.Context) (results.OperationResult[[]competitiondomain.LeaderboardRow, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]competitiondomain.LeaderboardRow, error], error) {
			doc, err := s.current(ctx, db)
			if err != nil {
				return results.OperationResult[[]competitiondomain.LeaderboardRow, error]{}, err
			}
			teams, err := s.deriveTeams(ctx, db, doc)
			if err != nil {
				return results.OperationResult[[]competitiondomain.LeaderboardRow, error]{}, err
			}
			return results.SuccessResult[[]competitiondomain.LeaderboardRow, error](competitiondomain.Leaderboard(doc, teams)), nil
		})
	})
	return unwrap(result, err)
}

// VisibleChallenges lists the challenges participants may see, or all of them
// when includeHidden is set.
func (s *CompetitionService) VisibleChallenges(ctx context.Context, includeHidden bool) ([]competitiondomain.Challenge, error) {
	doc, err := s.Document(ctx)
	if err != nil {
		return nil, err
	}
	return competitiondomain.VisibleChallenges(doc.Challenges, includeHidden), nil
}

// TeamForParticipant returns the derived team the participant belongs to.
func (s *CompetitionService) TeamForParticipant(ctx context.Context, participantID string) (competitiondomain.Team, bool, error) {
	teams, err := s.Teams(ctx)
	if err != nil {
		return competitiondomain.Team{}, false, err
	}
	team, ok := competitiondomain.TeamForParticipant(teams, participantID)
	return team, ok, nil
}

// -----------------------------------------------------------------------------
// Writes
// -----------------------------------------------------------------------------

// CreateChallenge appends a new default challenge.
func (s *CompetitionService) CreateChallenge(ctx context.Context, title *string) (competitiondomain.Challenge, error) {
	result, err := withTelemetry(s, ctx, "CreateChallenge", derefString(title), func(ctx context.Context) (results.OperationResult[competitiondomain.Challenge, error], error) {
		return applyWrite(s, ctx, func(_ context.Context, _ bun.IDB, doc competitiondomain.Document) (mutation[competitiondomain.Challenge], error) {
			c := competitiondomain.CreateChallenge(title)
			doc.Challenges = append(slices.Clone(doc.Challenges), c)
			return mutation[competitiondomain.Challenge]{
				doc:    doc,
				result: results.SuccessResult[competitiondomain.Challenge, error](c),
				events: []competitionevents.Event{{
					Topic:   competitionevents.ChallengeCreatedV1,
					Payload: competitionevents.ChallengeCreatedPayloadV1{Challenge: competitionevents.NewChallengePayload(c)},
				}},
			}, nil
		})
	})
	return unwrap(result, err)
}

// UpdateChallenge applies an edit to an existing challenge.
func (s *CompetitionService) UpdateChallenge(ctx context.Context, challengeID string, edit competitiondomain.ChallengeEdit) (competitiondomain.Challenge, error) {
	result, err := withTelemetry(s, ctx, "UpdateChallenge", challengeID, func(ctx context.Context) (results.OperationResult[competitiondomain.Challenge, error], error) {
		return applyWrite(s, ctx, func(_ context.Context, _ bun.IDB, doc competitiondomain.Document) (mutation[competitiondomain.Challenge], error) {
			existing, ok := doc.FindChallenge(challengeID)
			if !ok {
				return failed[competitiondomain.Challenge](ErrChallengeNotFound), nil
			}
			updated := competitiondomain.ApplyChallengeEdit(existing, edit)
			doc.Challenges, _ = competitiondomain.ReplaceChallenge(doc.Challenges, updated)
			return mutation[competitiondomain.Challenge]{
				doc:    doc,
				result: results.SuccessResult[competitiondomain.Challenge, error](updated),
				events: []competitionevents.Event{{
					Topic:   competitionevents.ChallengeUpdatedV1,
					Payload: competitionevents.ChallengeUpdatedPayloadV1{Challenge: competitionevents.NewChallengePayload(updated)},
				}},
			}, nil
		})
	})
	return unwrap(result, err)
}

// DeleteChallenge removes a challenge and every submission against it.
func (s *CompetitionService) DeleteChallenge(ctx context.Context, challengeID string) error {
	result, err := withTelemetry(s, ctx, "DeleteChallenge", challengeID, func(ctx context.Context) (results.OperationResult[int, error], error) {
		return applyWrite(s, ctx, func(_ context.Context, _ bun.IDB, doc competitiondomain.Document) (mutation[int], error) {
			next, ok := competitiondomain.RemoveChallenge(doc, challengeID)
			if !ok {
				return failed[int](ErrChallengeNotFound), nil
			}
			removed := len(doc.Submissions) - len(next.Submissions)
			return mutation[int]{
				doc:    next,
				result: results.SuccessResult[int, error](removed),
				events: []competitionevents.Event{{
					Topic:   competitionevents.ChallengeDeletedV1,
					Payload: competitionevents.ChallengeDeletedPayloadV1{ChallengeID: challengeID, RemovedSubmissions: removed},
				}},
			}, nil
		})
	})
	_, err = unwrap(result, err)
	return err
}

// SetSubmissionStatus records, changes or (with a nil status) clears a team's
// submission for a challenge. Clearing skips the team and challenge checks so
// orphaned records can still be removed.
func (s *CompetitionService) SetSubmissionStatus(ctx context.Context, params competitiondomain.SubmissionParams) ([]competitiondomain.Submission, error) {
	identifier := params.TeamID + "/" + params.ChallengeID
	result, err := withTelemetry(s, ctx, "SetSubmissionStatus", identifier, func(ctx context.Context) (results.OperationResult[[]competitiondomain.Submission, error], error) {
		if params.Status != nil && !params.Status.Valid() {
			return results.FailureResult[[]competitiondomain.Submission, error](
				fmt.Errorf("%w: %q", ErrInvalidStatus, string(*params.Status)),
			), nil
		}

		return applyWrite(s, ctx, func(ctx context.Context, db bun.IDB, doc competitiondomain.Document) (mutation[[]competitiondomain.Submission], error) {
			if params.Status != nil {
				if _, ok := doc.FindChallenge(params.ChallengeID); !ok {
					return failed[[]competitiondomain.Submission](ErrChallengeNotFound), nil
				}
				teams, err := s.deriveTeams(ctx, db, doc)
				if err != nil {
					return mutation[[]competitiondomain.Submission]{}, err
				}
				if !containsTeam(teams, params.TeamID) {
					return failed[[]competitiondomain.Submission](ErrTeamNotFound), nil
				}
			}

			now := s.now()
			doc.Submissions = competitiondomain.UpsertSubmission(doc.Submissions, params, now)
			return mutation[[]competitiondomain.Submission]{
				doc:    doc,
				result: results.SuccessResult[[]competitiondomain.Submission, error](doc.Submissions),
				events: []competitionevents.Event{{
					Topic: competitionevents.SubmissionStatusChangedV1,
					Payload: competitionevents.SubmissionStatusChangedPayloadV1{
						TeamID:          params.TeamID,
						ChallengeID:     params.ChallengeID,
						State:           string(competitiondomain.StateOf(doc.Submissions, params.TeamID, params.ChallengeID)),
						UpdatedByUserID: params.UpdatedBy,
						OccurredAt:      now.UTC(),
					},
				}},
			}, nil
		})
	})
	return unwrap(result, err)
}

// SetTeamLeader assigns or clears a team's leader. The leader must be a
// member of the freshly derived team.
func (s *CompetitionService) SetTeamLeader(ctx context.Context, teamID string, leaderID *string) (competitiondomain.Team, error) {
	result, err := withTelemetry(s, ctx, "SetTeamLeader", teamID, func(ctx context.Context) (results.OperationResult[competitiondomain.Team, error], error) {
		return applyWrite(s, ctx, func(ctx context.Context, db bun.IDB, doc competitiondomain.Document) (mutation[competitiondomain.Team], error) {
			teams, err := s.deriveTeams(ctx, db, doc)
			if err != nil {
				return mutation[competitiondomain.Team]{}, err
			}

			i := slices.IndexFunc(teams, func(t competitiondomain.Team) bool { return t.ID == teamID })
			if i < 0 {
				return failed[competitiondomain.Team](ErrTeamNotFound), nil
			}
			updated, ok := competitiondomain.AssignLeader(teams[i], leaderID)
			if !ok {
				return failed[competitiondomain.Team](ErrLeaderNotMember), nil
			}
			teams[i] = updated

			return mutation[competitiondomain.Team]{
				doc:    competitiondomain.MergeStoredTeams(doc, teams),
				result: results.SuccessResult[competitiondomain.Team, error](updated),
				events: []competitionevents.Event{{
					Topic:   competitionevents.TeamLeaderChangedV1,
					Payload: competitionevents.TeamLeaderChangedPayloadV1{TeamID: teamID, LeaderUserID: updated.LeaderID},
				}},
			}, nil
		})
	})
	return unwrap(result, err)
}

// -----------------------------------------------------------------------------
// Document state
// -----------------------------------------------------------------------------

// current returns the in-memory document, loading it through db on first use.
func (s *CompetitionService) current(ctx context.Context, db bun.IDB) (competitiondomain.Document, error) {
	s.mu.RLock()
	if s.loaded {
		doc := s.doc
		s.mu.RUnlock()
		return doc, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.doc, nil
	}
	doc, err := s.loadDocument(ctx, db)
	if err != nil {
		return competitiondomain.Document{}, err
	}
	s.doc, s.loaded = doc, true
	return doc, nil
}

func (s *CompetitionService) setDocument(doc competitiondomain.Document) {
	s.mu.Lock()
	s.doc, s.loaded = doc, true
	s.mu.Unlock()
}

// loadDocument reads and leniently decodes the document page. A missing page
// is the empty document.
func (s *CompetitionService) loadDocument(ctx context.Context, db bun.IDB) (competitiondomain.Document, error) {
	text, err := s.loadPage(ctx, db, s.pages.Document)
	if err != nil {
		return competitiondomain.Document{}, err
	}

	decoded := competitiondomain.DecodeDetailed(text)
	if decoded.Defaulted && text != "" {
		s.logger.WarnContext(ctx, "Stored competition document is unreadable, starting from an empty document",
			slog.String("page_id", s.pages.Document),
			slog.Int("length", len(text)),
		)
	}
	if decoded.DroppedRows > 0 {
		s.logger.WarnContext(ctx, "Dropped invalid rows while decoding competition document",
			slog.String("page_id", s.pages.Document),
			slog.Int("dropped_rows", decoded.DroppedRows),
		)
		s.metrics.RecordDroppedRows(ctx, decoded.DroppedRows)
	}
	return decoded.Document, nil
}

func (s *CompetitionService) loadPage(ctx context.Context, db bun.IDB, pageID string) (string, error) {
	text, err := s.repo.LoadPage(ctx, db, pageID)
	if err != nil {
		if errors.Is(err, competitiondb.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load page %q: %w", pageID, err)
	}
	return text, nil
}

// deriveTeams recomputes teams from the roster page and the directory,
// carrying leaders over from doc.
func (s *CompetitionService) deriveTeams(ctx context.Context, db bun.IDB, doc competitiondomain.Document) ([]competitiondomain.Team, error) {
	roster, err := s.loadPage(ctx, db, s.pages.Roster)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListParticipants(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	directory := make([]competitiondomain.Participant, len(rows))
	for i, p := range rows {
		directory[i] = competitiondomain.Participant{ID: p.ID, FullName: p.FullName, DisplayName: p.DisplayName}
	}

	derivation := competitiondomain.DeriveTeamsReport(roster, directory, doc.Teams)
	if n := len(derivation.Unresolved); n > 0 {
		s.logger.WarnContext(ctx, "Roster names did not match any participant",
			slog.Int("unresolved_count", n),
		)
		for _, u := range derivation.Unresolved {
			s.logger.DebugContext(ctx, "Unresolved roster name",
				slog.String("team_id", u.TeamID),
				slog.String("raw_name", u.RawName),
			)
		}
		s.metrics.RecordUnresolvedNames(ctx, n)
	}
	return derivation.Teams, nil
}

// publish emits events after a successful save. Failures, panics included,
// are logged only: the document is already persisted.
func (s *CompetitionService) publish(ctx context.Context, events []competitionevents.Event) {
	if s.publisher == nil {
		return
	}
	for _, e := range events {
		msg, err := competitionevents.NewMessage(ctx, e)
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to build competition event", slog.String("topic", e.Topic), slog.Any("error", err))
			continue
		}
		if err := s.publishOne(e.Topic, msg); err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish competition event",
				slog.String("topic", e.Topic),
				slog.String("message_id", msg.UUID),
				slog.Any("error", err),
			)
		}
	}
}

func (s *CompetitionService) publishOne(topic string, msg *message.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in publisher: %v", r)
		}
	}()
	return s.publisher.Publish(topic, msg)
}

// idb avoids handing repositories a typed-nil *bun.DB.
func (s *CompetitionService) idb() bun.IDB {
	if s.db == nil {
		return nil
	}
	return s.db
}

func containsTeam(teams []competitiondomain.Team, teamID string) bool {
	return slices.ContainsFunc(teams, func(t competitiondomain.Team) bool { return t.ID == teamID })
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
