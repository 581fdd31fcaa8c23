package competitionhandlers

import (
	"time"

	competitiondomain "github.com/Black-And-White-Club/tripquest/app/modules/competition/domain"
)

type ChallengeResponse struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Description        *string `json:"description,omitempty"`
	Stars              int     `json:"stars"`
	IsActive           bool    `json:"isActive"`
	ParticipantVisible bool    `json:"participantVisible"`
}

type TeamResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	LeaderUserID  *string  `json:"leaderUserId"`
	MemberUserIDs []string `json:"memberUserIds"`
}

type LeaderboardRowResponse struct {
	Rank          int          `json:"rank"`
	Team          TeamResponse `json:"team"`
	Stars         int          `json:"stars"`
	ApprovedCount int          `json:"approvedCount"`
}

type SubmissionResponse struct {
	ID              string    `json:"id"`
	TeamID          string    `json:"teamId"`
	ChallengeID     string    `json:"challengeId"`
	Status          string    `json:"status"`
	UpdatedAt       time.Time `json:"updatedAt"`
	UpdatedByUserID *string   `json:"updatedByUserId,omitempty"`
}

type CreateChallengeRequest struct {
	Title *string `json:"title"`
}

// UpdateChallengeRequest leaves absent fields unchanged. An empty description
// clears it.
type UpdateChallengeRequest struct {
	Title              *string  `json:"title"`
	Description        *string  `json:"description"`
	Stars              *float64 `json:"stars"`
	IsActive           *bool    `json:"isActive"`
	ParticipantVisible *bool    `json:"participantVisible"`
}

// SetSubmissionRequest sets a team's status on a challenge. A null or absent
// status clears the record.
type SetSubmissionRequest struct {
	TeamID          string  `json:"teamId"`
	ChallengeID     string  `json:"challengeId"`
	Status          *string `json:"status"`
	UpdatedByUserID *string `json:"updatedByUserId"`
}

type SetTeamLeaderRequest struct {
	LeaderUserID *string `json:"leaderUserId"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toChallengeResponse(c competitiondomain.Challenge) ChallengeResponse {
	return ChallengeResponse{
		ID:                 c.ID,
		Title:              c.Title,
		Description:        c.Description,
		Stars:              c.Stars,
		IsActive:           c.IsActive,
		ParticipantVisible: c.ParticipantVisible,
	}
}

func toChallengeResponses(cs []competitiondomain.Challenge) []ChallengeResponse {
	out := make([]ChallengeResponse, len(cs))
	for i, c := range cs {
		out[i] = toChallengeResponse(c)
	}
	return out
}

func toTeamResponse(t competitiondomain.Team) TeamResponse {
	members := t.MemberIDs
	if members == nil {
		members = []string{}
	}
	return TeamResponse{ID: t.ID, Name: t.Name, LeaderUserID: t.LeaderID, MemberUserIDs: members}
}

func toTeamResponses(ts []competitiondomain.Team) []TeamResponse {
	out := make([]TeamResponse, len(ts))
	for i, t := range ts {
		out[i] = toTeamResponse(t)
	}
	return out
}

func toLeaderboardResponse(rows []competitiondomain.LeaderboardRow) []LeaderboardRowResponse {
	out := make([]LeaderboardRowResponse, len(rows))
	for i, r := range rows {
		out[i] = LeaderboardRowResponse{
			Rank:          r.Rank,
			Team:          toTeamResponse(r.Team),
			Stars:         r.Stars,
			ApprovedCount: r.ApprovedCount,
		}
	}
	return out
}

func toSubmissionResponses(subs []competitiondomain.Submission) []SubmissionResponse {
	out := make([]SubmissionResponse, len(subs))
	for i, s := range subs {
		out[i] = SubmissionResponse{
			ID:              s.ID,
			TeamID:          s.TeamID,
			ChallengeID:     s.ChallengeID,
			Status:          string(s.Status),
			UpdatedAt:       s.UpdatedAt,
			UpdatedByUserID: s.UpdatedBy,
		}
	}
	return out
}

func (r UpdateChallengeRequest) toEdit() competitiondomain.ChallengeEdit {
	return competitiondomain.ChallengeEdit{
		Title:              r.Title,
		Description:        r.Description,
		Stars:              r.Stars,
		IsActive:           r.IsActive,
		ParticipantVisible: r.ParticipantVisible,
	}
}

func (r SetSubmissionRequest) toParams() competitiondomain.SubmissionParams {
	p := competitiondomain.SubmissionParams{
		TeamID:      r.TeamID,
		ChallengeID: r.ChallengeID,
		UpdatedBy:   r.UpdatedByUserID,
	}
	if r.Status != nil {
		s := competitiondomain.SubmissionStatus(*r.Status)
		p.Status = &s
	}
	return p
}
