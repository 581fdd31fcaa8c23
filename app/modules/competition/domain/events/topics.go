package competitionevents

// Topics published after a successful save of the competition document.
const (
	ChallengeCreatedV1        = "competition.challenge.created.v1"
	ChallengeUpdatedV1        = "competition.challenge.updated.v1"
	ChallengeDeletedV1        = "competition.challenge.deleted.v1"
	SubmissionStatusChangedV1 = "competition.submission.status_changed.v1"
	TeamLeaderChangedV1       = "competition.team.leader_changed.v1"
)

// AllTopics lists every competition topic.
var AllTopics = []string{
	ChallengeCreatedV1,
	ChallengeUpdatedV1,
	ChallengeDeletedV1,
	SubmissionStatusChangedV1,
	TeamLeaderChangedV1,
}
