package competitionhandlers

import "net/http"

// Handlers serves the competition HTTP API.
type Handlers interface {
	HandleLeaderboard(w http.ResponseWriter, r *http.Request)
	HandleTeams(w http.ResponseWriter, r *http.Request)
	HandleParticipantTeam(w http.ResponseWriter, r *http.Request)
	HandleListChallenges(w http.ResponseWriter, r *http.Request)
	HandleCreateChallenge(w http.ResponseWriter, r *http.Request)
	HandleUpdateChallenge(w http.ResponseWriter, r *http.Request)
	HandleDeleteChallenge(w http.ResponseWriter, r *http.Request)
	HandleListSubmissions(w http.ResponseWriter, r *http.Request)
	HandleSetSubmission(w http.ResponseWriter, r *http.Request)
	HandleSetTeamLeader(w http.ResponseWriter, r *http.Request)
	HandleReload(w http.ResponseWriter, r *http.Request)
}
