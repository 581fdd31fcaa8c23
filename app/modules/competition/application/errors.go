package competitionservice

import "errors"

var (
	// ErrPersistence means the content store rejected a save. The in-memory
	// document already holds the change and is not rolled back; the caller
	// may retry the operation or reload.
	ErrPersistence = errors.New("failed to persist competition document")

	ErrChallengeNotFound = errors.New("challenge not found")
	ErrTeamNotFound      = errors.New("team not found")
	ErrLeaderNotMember   = errors.New("leader is not a member of the team")
	ErrInvalidStatus     = errors.New("invalid submission status")
)
