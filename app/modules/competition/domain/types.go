package competitiondomain

import "time"

// SubmissionStatus is the stored approval state of a team's attempt at a challenge.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

// Valid reports whether s is one of the three stored statuses.
func (s SubmissionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// SubmissionState adds the "no record" state to the stored statuses.
type SubmissionState string

const (
	StateNotSubmitted SubmissionState = "not_submitted"
	StatePending      SubmissionState = SubmissionState(StatusPending)
	StateApproved     SubmissionState = SubmissionState(StatusApproved)
	StateRejected     SubmissionState = SubmissionState(StatusRejected)
)

// Participant is one record of the read-only participant directory.
type Participant struct {
	ID          string
	FullName    string
	DisplayName string
}

// RosterGroup is one block of the roster text: a title line plus member lines.
type RosterGroup struct {
	Title       string
	MemberNames []string
}

// Team is a derived group of resolved participants.
// LeaderID, when set, is always one of MemberIDs.
type Team struct {
	ID        string
	Name      string
	LeaderID  *string
	MemberIDs []string
}

// HasMember reports whether participantID is on the team.
func (t Team) HasMember(participantID string) bool {
	for _, id := range t.MemberIDs {
		if id == participantID {
			return true
		}
	}
	return false
}

// Challenge is a scorable task worth a fixed number of stars.
type Challenge struct {
	ID                 string
	Title              string
	Description        *string
	Stars              int
	IsActive           bool
	ParticipantVisible bool
}

// Submission is the current status of one team's attempt at one challenge.
// At most one exists per (TeamID, ChallengeID).
type Submission struct {
	ID          string
	TeamID      string
	ChallengeID string
	Status      SubmissionStatus
	UpdatedAt   time.Time
	UpdatedBy   *string
}

// Document is the persisted competition aggregate.
type Document struct {
	Teams       []Team
	Challenges  []Challenge
	Submissions []Submission
}

// EmptyDocument returns a document with empty, non-nil lists.
func EmptyDocument() Document {
	return Document{
		Teams:       []Team{},
		Challenges:  []Challenge{},
		Submissions: []Submission{},
	}
}

// FindChallenge returns the challenge with the given id.
func (d Document) FindChallenge(id string) (Challenge, bool) {
	for _, c := range d.Challenges {
		if c.ID == id {
			return c, true
		}
	}
	return Challenge{}, false
}

// FindTeam returns the stored team with the given id.
func (d Document) FindTeam(id string) (Team, bool) {
	for _, t := range d.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}
