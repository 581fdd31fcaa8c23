package competitionhandlers

import (
	"github.com/go-chi/chi/v5"
)

// RoutePrefix is where the competition API is mounted.
const RoutePrefix = "/api/competition"

// RegisterRoutes mounts the competition API on r. A nil limiter disables rate
// limiting.
func RegisterRoutes(r chi.Router, h Handlers, allowedOrigins []string, limiter *IPRateLimiter) {
	r.Route(RoutePrefix, func(r chi.Router) {
		r.Use(CORSMiddleware(allowedOrigins))
		if limiter != nil {
			r.Use(RateLimitMiddleware(limiter))
		}

		r.Get("/leaderboard", h.HandleLeaderboard)

		r.Get("/teams", h.HandleTeams)
		r.Put("/teams/{teamID}/leader", h.HandleSetTeamLeader)
		r.Get("/participants/{participantID}/team", h.HandleParticipantTeam)

		r.Route("/challenges", func(r chi.Router) {
			r.Get("/", h.HandleListChallenges)
			r.Post("/", h.HandleCreateChallenge)
			r.Patch("/{challengeID}", h.HandleUpdateChallenge)
			r.Delete("/{challengeID}", h.HandleDeleteChallenge)
		})

		r.Get("/submissions", h.HandleListSubmissions)
		r.Put("/submissions", h.HandleSetSubmission)

		r.Post("/reload", h.HandleReload)
	})
}
