package competitionevents

import (
	"time"

	competitiondomain "github.com/Black-And-White-Club/tripquest/app/modules/competition/domain"
)

// Event pairs a topic with its payload.
type Event struct {
	Topic   string
	Payload any
}

// ChallengePayloadV1 is the challenge snapshot carried by challenge events.
type ChallengePayloadV1 struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Description        *string `json:"description,omitempty"`
	Stars              int     `json:"stars"`
	IsActive           bool    `json:"isActive"`
	ParticipantVisible bool    `json:"participantVisible"`
}

type ChallengeCreatedPayloadV1 struct {
	Challenge ChallengePayloadV1 `json:"challenge"`
}

type ChallengeUpdatedPayloadV1 struct {
	Challenge ChallengePayloadV1 `json:"challenge"`
}

// ChallengeDeletedPayloadV1 reports the removal of a challenge together with
// the number of submissions removed with it.
type ChallengeDeletedPayloadV1 struct {
	ChallengeID        string `json:"challengeId"`
	RemovedSubmissions int    `json:"removedSubmissions"`
}

// SubmissionStatusChangedPayloadV1 reports a status change. State is
// "not_submitted" when the record was cleared.
type SubmissionStatusChangedPayloadV1 struct {
	TeamID          string    `json:"teamId"`
	ChallengeID     string    `json:"challengeId"`
	State           string    `json:"state"`
	UpdatedByUserID *string   `json:"updatedByUserId,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}

type TeamLeaderChangedPayloadV1 struct {
	TeamID       string  `json:"teamId"`
	LeaderUserID *string `json:"leaderUserId,omitempty"`
}

// NewChallengePayload snapshots a challenge.
func NewChallengePayload(c competitiondomain.Challenge) ChallengePayloadV1 {
	return ChallengePayloadV1{
		ID:                 c.ID,
		Title:              c.Title,
		Description:        c.Description,
		Stars:              c.Stars,
		IsActive:           c.IsActive,
		ParticipantVisible: c.ParticipantVisible,
	}
}
