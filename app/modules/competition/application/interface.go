package competitionservice

import (
	"context"

	competitiondomain "github.com/Black-And-White-Club/tripquest/app/modules/competition/domain"
)

// Service is the competition application API.
//
// It assumes a single writer. Every mutation overwrites the whole persisted
// document with this process's in-memory copy, so two processes writing at
// once silently lose one side's changes. Within one Service, writes are
// applied and saved strictly in the order they were submitted.
type Service interface {
	// Document returns the current in-memory document, loading it on first use.
	// The returned value shares slices with the service and must not be modified.
	Document(ctx context.Context) (competitiondomain.Document, error)

	// Reload discards the in-memory document and decodes the stored one again.
	Reload(ctx context.Context) (competitiondomain.Document, error)

	Teams(ctx context.Context) ([]competitiondomain.Team, error)
	Leaderboard(ctx context.Context) ([]competitiondomain.LeaderboardRow, error)
	VisibleChallenges(ctx context.Context, includeHidden bool) ([]competitiondomain.Challenge, error)
	TeamForParticipant(ctx context.Context, participantID string) (competitiondomain.Team, bool, error)

	CreateChallenge(ctx context.Context, title *string) (competitiondomain.Challenge, error)
	UpdateChallenge(ctx context.Context, challengeID string, edit competitiondomain.ChallengeEdit) (competitiondomain.Challenge, error)
	DeleteChallenge(ctx context.Context, challengeID string) error
	SetSubmissionStatus(ctx context.Context, params competitiondomain.SubmissionParams) ([]competitiondomain.Submission, error)
	SetTeamLeader(ctx context.Context, teamID string, leaderID *string) (competitiondomain.Team, error)
}
