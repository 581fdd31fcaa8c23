package competitiondomain

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionParams describes a requested status change. A nil Status clears
// the record.
type SubmissionParams struct {
	TeamID      string
	ChallengeID string
	Status      *SubmissionStatus
	UpdatedBy   *string
}

// FindSubmission returns the record for (teamID, challengeID), if any.
func FindSubmission(subs []Submission, teamID, challengeID string) (Submission, bool) {
	if i := indexOfSubmission(subs, teamID, challengeID); i >= 0 {
		return subs[i], true
	}
	return Submission{}, false
}

// StateOf reports the four-valued state of (teamID, challengeID).
func StateOf(subs []Submission, teamID, challengeID string) SubmissionState {
	s, ok := FindSubmission(subs, teamID, challengeID)
	if !ok {
		return StateNotSubmitted
	}
	return SubmissionState(s.Status)
}

// UpsertSubmission applies params to subs and returns the new list. The input
// slice is not modified. Any status may follow any other; restricting who may
// request which change is up to the caller.
func UpsertSubmission(subs []Submission, params SubmissionParams, now time.Time) []Submission {
	i := indexOfSubmission(subs, params.TeamID, params.ChallengeID)

	if params.Status == nil {
		if i < 0 {
			return subs
		}
		out := make([]Submission, 0, len(subs)-1)
		out = append(out, subs[:i]...)
		return append(out, subs[i+1:]...)
	}

	if i < 0 {
		out := make([]Submission, len(subs), len(subs)+1)
		copy(out, subs)
		return append(out, Submission{
			ID:          uuid.NewString(),
			TeamID:      params.TeamID,
			ChallengeID: params.ChallengeID,
			Status:      *params.Status,
			UpdatedAt:   now.UTC(),
			UpdatedBy:   cloneString(params.UpdatedBy),
		})
	}

	out := make([]Submission, len(subs))
	copy(out, subs)
	out[i].Status = *params.Status
	out[i].UpdatedBy = cloneString(params.UpdatedBy)
	out[i].UpdatedAt = now.UTC()
	return out
}

func indexOfSubmission(subs []Submission, teamID, challengeID string) int {
	for i, s := range subs {
		if s.TeamID == teamID && s.ChallengeID == challengeID {
			return i
		}
	}
	return -1
}
