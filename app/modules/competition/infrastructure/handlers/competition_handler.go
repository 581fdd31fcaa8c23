package competitionhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	competitionservice "github.com/Black-And-White-Club/tripquest/app/modules/competition/application"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func (h *CompetitionHandlers) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "HandleLeaderboard")
	defer span.End()

	rows, err := h.service.Leaderboard(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, span, err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaderboardResponse(rows))
}

func (h *CompetitionHandlers) HandleTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "HandleTeams")
	defer span.End()

	teams, err := h.service.Teams(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, span, err)
		return
	}
	writeJSON(w, http.StatusOK, toTeamResponses(teams))
}

func (h *CompetitionHandlers) HandleParticipantTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "HandleParticipantTeam")
	defer span.End()

	participantID := chi.URLParam(r, "participantID")
	team, ok, err := h.service.TeamForParticipant(ctx, participantID)
	if err != nil {
		h.writeServiceError(ctx, w, span, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "participant is not on a team"})
		return
	}
	writeJSON(w, http.StatusOK, toTeamResponse(team))
}

// HandleListChallenges lists participant-visible challenges; ?all=true
// includes inactive and hidden ones.
func (h *CompetitionHandlers) HandleListChallenges(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "HandleListChallenges")
	defer span.End()

	includeHidden := false
	if v := r.URL.Query().Get("all"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid value for all"})
			return
		}
		includeHidden = b
	}

	challenges, err := h.service.VisibleChallenges(ctx, includeHidden)
	if err != nil {
		h.writeServiceError(ctx, w, span, err)
		return
	}
	writeJSON(w, http.StatusOK, toChallengeResponses(challenges))
}

func (h *CompetitionHandlers) HandleCreateChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "HandleCreateChallenge")
	defer span.End()

	var req CreateChallengeRequest
	if !h.decodeBody(w, r, &req, true) {
		return
	}

	c, err := h.service.CreateChallenge(ctx, req.Title)
	if err != nil {
		h.writeServiceError(ctx, w, span, err)
		return
	}
	writeJSON(w, http.StatusCreated, toChallengeResponse(c))
}

func (h *CompetitionHandlers) HandleUpdateChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "HandleUpdateChallenge")
	defer span.End()

	challengeID := chi.URLParam(r, "challengeID")
	span.SetAttributes(attribute.String("challenge_id", challengeID))

	var req UpdateChallengeRequest
	if !h.decodeBody(w, r, &req, false) {
		return
	}

	c, err := h.service.UpdateChallenge(ctx, challengeID, req.toEdit())
	if err != nil {
		h.writeServiceError(ctx, w, span, err)
		return
	}
	writeJSON(w, http.StatusOK, toChallengeResponse(c))
}

func (h *CompetitionHandlers) HandleDeleteChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "HandleDeleteChallenge")
	defer span.End()

	challengeID := chi.URLParam(r, "challengeID")
	span.SetAttributes(attribute.String("challenge_id", challengeID))

	if err := h.service.DeleteChallenge(ctx, challengeID); err != nil {
		h.writeServiceError(ctx, w, span, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListSubmissions returns every submission, optionally filtered by
// ?teamId=.
func (h *CompetitionHandlers) HandleListSubmissions(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "HandleListSubmissions")
	defer span.End()

	doc, err := h.service.Document(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, span, err)
		return
	}

	subs := doc.Submissions
	if teamID := r.URL.Query().Get("teamId"); teamID != "" {
		subs = subs[:0:0]
		for _, s := range doc.Submissions {
			if s.TeamID == teamID {
				subs = append(subs, s)
			}
		}
	}
	writeJSON(w, http.StatusOK, toSubmissionResponses(subs))
}

func (h *CompetitionHandlers) HandleSetSubmission(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "HandleSetSubmission")
	defer span.End()

	var req SetSubmissionRequest
	if !h.decodeBody(w, r, &req, false) {
		return
	}
	if strings.TrimSpace(req.TeamID) == "" || strings.TrimSpace(req.ChallengeID) == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "teamId and challengeId are required"})
		return
	}
	span.SetAttributes(
		attribute.String("team_id", req.TeamID),
		attribute.String("challenge_id", req.ChallengeID),
	)

	subs, err := h.service.SetSubmissionStatus(ctx, req.toParams())
	if err != nil {
		h.writeServiceError(ctx, w, span, err)
		return
	}
	writeJSON(w, http.StatusOK, toSubmissionResponses(subs))
}

func (h *CompetitionHandlers) HandleSetTeamLeader(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "HandleSetTeamLeader")
	defer span.End()

	teamID := chi.URLParam(r, "teamID")
	span.SetAttributes(attribute.String("team_id", teamID))

	var req SetTeamLeaderRequest
	if !h.decodeBody(w, r, &req, false) {
		return
	}

	team, err := h.service.SetTeamLeader(ctx, teamID, req.LeaderUserID)
	if err != nil {
		h.writeServiceError(ctx, w, span, err)
		return
	}
	writeJSON(w, http.StatusOK, toTeamResponse(team))
}

func (h *CompetitionHandlers) HandleReload(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "HandleReload")
	defer span.End()

	doc, err := h.service.Reload(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, span, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"teams":       len(doc.Teams),
		"challenges":  len(doc.Challenges),
		"submissions": len(doc.Submissions),
	})
}

func (h *CompetitionHandlers) startSpan(r *http.Request, name string) (context.Context, trace.Span) {
	if h.tracer == nil {
		return r.Context(), trace.SpanFromContext(r.Context())
	}
	return h.tracer.Start(r.Context(), name)
}

// decodeBody reads a JSON body into dst. With allowEmpty, a missing body
// leaves dst untouched.
func (h *CompetitionHandlers) decodeBody(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return true
	}
	h.logger.WarnContext(r.Context(), "Rejected malformed request body",
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	return false
}

// writeServiceError maps service errors to HTTP statuses.
func (h *CompetitionHandlers) writeServiceError(ctx context.Context, w http.ResponseWriter, span trace.Span, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, competitionservice.ErrInvalidStatus):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, competitionservice.ErrChallengeNotFound),
		errors.Is(err, competitionservice.ErrTeamNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, competitionservice.ErrLeaderNotMember):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, competitionservice.ErrPersistence):
		status, msg = http.StatusServiceUnavailable, "change applied but not saved; retry or reload"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status, msg = http.StatusServiceUnavailable, "request cancelled"
	}

	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "Competition request failed", slog.Int("status", status), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		h.logger.WarnContext(ctx, "Competition request rejected", slog.Int("status", status), slog.Any("error", err))
	}
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
