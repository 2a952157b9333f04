package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/snipcast/server/internal/domain"
	"github.com/snipcast/server/internal/service/session"
)

type SentenceInput struct {
	Id            string  `json:"id" validate:"required"`
	Text          string  `json:"text"`
	StartTime     float64 `json:"start_time" validate:"gte=0"`
	EndTime       float64 `json:"end_time" validate:"gtfield=StartTime"`
	IsSelected    bool    `json:"is_selected"`
	IsHighlighted bool    `json:"is_highlighted"`
}

type CreateSessionInput struct {
	VideoId   string          `json:"video_id" validate:"required"`
	Sentences []SentenceInput `json:"sentences" validate:"required,min=1,dive"`
}

func (c *controller) createSession(w http.ResponseWriter, r *http.Request) {
	var input CreateSessionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		c.respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if validationErrors, ok := c.validate.Validate(input); !ok {
		c.respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"errors": validationErrors,
		})
		return
	}

	sentences := make([]domain.Sentence, 0, len(input.Sentences))
	for _, s := range input.Sentences {
		sentences = append(sentences, domain.Sentence{
			Id:            s.Id,
			Text:          s.Text,
			StartTime:     s.StartTime,
			EndTime:       s.EndTime,
			IsSelected:    s.IsSelected,
			IsHighlighted: s.IsHighlighted,
		})
	}

	resp, err := c.sessionService.CreateSession(r.Context(), &session.CreateSessionParams{
		VideoId:   input.VideoId,
		Sentences: sentences,
	})
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to create session", "error", err)
		c.respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	c.respondJSON(w, http.StatusCreated, map[string]any{
		"session_id": resp.SessionId,
		"state":      resp.State,
	})
}

func (c *controller) getSessionState(w http.ResponseWriter, r *http.Request) {
	sessionId := chi.URLParam(r, "session-id")

	state, err := c.sessionService.Snapshot(sessionId)
	if err != nil {
		c.respondSessionError(w, r, err)
		return
	}

	sentences, err := c.sessionService.Sentences(sessionId)
	if err != nil {
		c.respondSessionError(w, r, err)
		return
	}

	c.respondJSON(w, http.StatusOK, map[string]any{
		"state":     state,
		"sentences": sentences,
	})
}

func (c *controller) closeSession(w http.ResponseWriter, r *http.Request) {
	sessionId := chi.URLParam(r, "session-id")

	if err := c.sessionService.CloseSession(r.Context(), sessionId); err != nil {
		c.respondSessionError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *controller) respondSessionError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, session.ErrSessionNotFound) {
		c.respondError(w, http.StatusNotFound, "session not found")
		return
	}

	c.logger.WarnContext(r.Context(), "session request failed", "error", err)
	c.respondError(w, http.StatusInternalServerError, "internal error")
}

func (c *controller) respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		c.logger.Warn("failed to encode response", "error", err)
	}
}

func (c *controller) respondError(w http.ResponseWriter, code int, message string) {
	c.respondJSON(w, code, map[string]string{"error": message})
}
