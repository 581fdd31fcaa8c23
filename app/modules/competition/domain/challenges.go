package competitiondomain

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultChallengeStars is the star value of a newly created challenge.
	DefaultChallengeStars = 1
	// DefaultChallengeTitle is used when a challenge is created without a title.
	DefaultChallengeTitle = "New challenge"
)

// ChallengeEdit carries the fields to change on a challenge; nil fields are
// left alone. Stars is a float so that non-integer input can be clamped.
type ChallengeEdit struct {
	Title              *string
	Description        *string
	Stars              *float64
	IsActive           *bool
	ParticipantVisible *bool
}

// ClampStars rounds v to the nearest integer and enforces a floor of 1.
// NaN and infinities fall back to DefaultChallengeStars.
func ClampStars(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return DefaultChallengeStars
	}
	r := math.Round(v)
	if r < 1 {
		return 1
	}
	if r > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(r)
}

// CreateChallenge returns an active, participant-visible challenge worth the
// default number of stars.
func CreateChallenge(title *string) Challenge {
	t := DefaultChallengeTitle
	if title != nil && strings.TrimSpace(*title) != "" {
		t = strings.TrimSpace(*title)
	}
	return Challenge{
		ID:                 uuid.NewString(),
		Title:              t,
		Stars:              DefaultChallengeStars,
		IsActive:           true,
		ParticipantVisible: true,
	}
}

// ApplyChallengeEdit returns c with the edit applied. A blank title is ignored
// and an empty description clears it.
func ApplyChallengeEdit(c Challenge, edit ChallengeEdit) Challenge {
	if edit.Title != nil && strings.TrimSpace(*edit.Title) != "" {
		c.Title = strings.TrimSpace(*edit.Title)
	}
	if edit.Description != nil {
		if d := strings.TrimSpace(*edit.Description); d != "" {
			c.Description = &d
		} else {
			c.Description = nil
		}
	}
	if edit.Stars != nil {
		c.Stars = ClampStars(*edit.Stars)
	}
	if edit.IsActive != nil {
		c.IsActive = *edit.IsActive
	}
	if edit.ParticipantVisible != nil {
		c.ParticipantVisible = *edit.ParticipantVisible
	}
	return c
}

// ReplaceChallenge returns a copy of challenges with the entry of the same id
// swapped for c.
func ReplaceChallenge(challenges []Challenge, c Challenge) ([]Challenge, bool) {
	out := make([]Challenge, len(challenges))
	copy(out, challenges)
	for i := range out {
		if out[i].ID == c.ID {
			out[i] = c
			return out, true
		}
	}
	return out, false
}

// RemoveChallenge drops a challenge and every submission that refers to it.
func RemoveChallenge(doc Document, challengeID string) (Document, bool) {
	challenges := make([]Challenge, 0, len(doc.Challenges))
	found := false
	for _, c := range doc.Challenges {
		if c.ID == challengeID {
			found = true
			continue
		}
		challenges = append(challenges, c)
	}
	if !found {
		return doc, false
	}

	submissions := make([]Submission, 0, len(doc.Submissions))
	for _, s := range doc.Submissions {
		if s.ChallengeID != challengeID {
			submissions = append(submissions, s)
		}
	}

	doc.Challenges = challenges
	doc.Submissions = submissions
	return doc, true
}

// VisibleChallenges filters the challenges a participant may see: active and
// participant-visible. includeHidden returns every challenge.
func VisibleChallenges(challenges []Challenge, includeHidden bool) []Challenge {
	out := make([]Challenge, 0, len(challenges))
	for _, c := range challenges {
		if includeHidden || (c.IsActive && c.ParticipantVisible) {
			out = append(out, c)
		}
	}
	return out
}
