package competitionhandlers

import (
	"context"

	competitionservice "github.com/Black-And-White-Club/tripquest/app/modules/competition/application"
	competitiondomain "github.com/Black-And-White-Club/tripquest/app/modules/competition/domain"
)

// FakeService is a programmable competitionservice.Service.
type FakeService struct {
	DocumentFunc            func(ctx context.Context) (competitiondomain.Document, error)
	ReloadFunc              func(ctx context.Context) (competitiondomain.Document, error)
	TeamsFunc               func(ctx context.Context) ([]competitiondomain.Team, error)
	LeaderboardFunc         func(ctx context.Context) ([]competitiondomain.LeaderboardRow, error)
	VisibleChallengesFunc   func(ctx context.Context, includeHidden bool) ([]competitiondomain.Challenge, error)
	TeamForParticipantFunc  func(ctx context.Context, participantID string) (competitiondomain.Team, bool, error)
	CreateChallengeFunc     func(ctx context.Context, title *string) (competitiondomain.Challenge, error)
	UpdateChallengeFunc     func(ctx context.Context, challengeID string, edit competitiondomain.ChallengeEdit) (competitiondomain.Challenge, error)
	DeleteChallengeFunc     func(ctx context.Context, challengeID string) error
	SetSubmissionStatusFunc func(ctx context.Context, params competitiondomain.SubmissionParams) ([]competitiondomain.Submission, error)
	SetTeamLeaderFunc       func(ctx context.Context, teamID string, leaderID *string) (competitiondomain.Team, error)
}

func (f *FakeService) Document(ctx context.Context) (competitiondomain.Document, error) {
	if f.DocumentFunc != nil {
		return f.DocumentFunc(ctx)
	}
	return competitiondomain.EmptyDocument(), nil
}

func (f *FakeService) Reload(ctx context.Context) (competitiondomain.Document, error) {
	if f.ReloadFunc != nil {
		return f.ReloadFunc(ctx)
	}
	return competitiondomain.EmptyDocument(), nil
}

func (f *FakeService) Teams(ctx context.Context) ([]competitiondomain.Team, error) {
	if f.TeamsFunc != nil {
		return f.TeamsFunc(ctx)
	}
	return []competitiondomain.Team{}, nil
}

func (f *FakeService) Leaderboard(ctx context.Context) ([]competitiondomain.LeaderboardRow, error) {
	if f.LeaderboardFunc != nil {
		return f.LeaderboardFunc(ctx)
	}
	return []competitiondomain.LeaderboardRow{}, nil
}

func (f *FakeService) VisibleChallenges(ctx context.Context, includeHidden bool) ([]competitiondomain.Challenge, error) {
	if f.VisibleChallengesFunc != nil {
		return f.VisibleChallengesFunc(ctx, includeHidden)
	}
	return []competitiondomain.Challenge{}, nil
}

func (f *FakeService) TeamForParticipant(ctx context.Context, participantID string) (competitiondomain.Team, bool, error) {
	if f.TeamForParticipantFunc != nil {
		return f.TeamForParticipantFunc(ctx, participantID)
	}
	return competitiondomain.Team{}, false, nil
}

func (f *FakeService) CreateChallenge(ctx context.Context, title *string) (competitiondomain.Challenge, error) {
	if f.CreateChallengeFunc != nil {
		return f.CreateChallengeFunc(ctx, title)
	}
	return competitiondomain.CreateChallenge(title), nil
}

func (f *FakeService) UpdateChallenge(ctx context.Context, challengeID string, edit competitiondomain.ChallengeEdit) (competitiondomain.Challenge, error) {
	if f.UpdateChallengeFunc != nil {
		return f.UpdateChallengeFunc(ctx, challengeID, edit)
	}
	return competitiondomain.Challenge{}, competitionservice.ErrChallengeNotFound
}

func (f *FakeService) DeleteChallenge(ctx context.Context, challengeID string) error {
	if f.DeleteChallengeFunc != nil {
		return f.DeleteChallengeFunc(ctx, challengeID)
	}
	return nil
}

func (f *FakeService) SetSubmissionStatus(ctx context.Context, params competitiondomain.SubmissionParams) ([]competitiondomain.Submission, error) {
	if f.SetSubmissionStatusFunc != nil {
		return f.SetSubmissionStatusFunc(ctx, params)
	}
	return []competitiondomain.Submission{}, nil
}

func (f *FakeService) SetTeamLeader(ctx context.Context, teamID string, leaderID *string) (competitiondomain.Team, error) {
	if f.SetTeamLeaderFunc != nil {
		return f.SetTeamLeaderFunc(ctx, teamID, leaderID)
	}
	return competitiondomain.Team{}, competitionservice.ErrTeamNotFound
}

var _ competitionservice.Service = (*FakeService)(nil)
