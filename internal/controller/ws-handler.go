package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/snipcast/server/internal/domain"
	"github.com/snipcast/server/internal/media/bridge"
	"github.com/snipcast/server/internal/mediasync"
	"github.com/snipcast/server/internal/playback"
	"github.com/snipcast/server/internal/service/session"
	"github.com/snipcast/server/pkg/ctxlogger"
	"github.com/snipcast/server/pkg/wsrouter"
)

type Output struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// connWriter serializes writes to one websocket connection.
type connWriter struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (w *connWriter) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.conn.WriteJSON(v)
}

// serveSession upgrades the connection, binds a bridge media resource for
// the client-hosted element, and streams state updates until the connection
// drops. One media connection per session: a second bind is rejected.
func (c *controller) serveSession(w http.ResponseWriter, r *http.Request) {
	sessionId := chi.URLParam(r, "session-id")
	ctx := ctxlogger.AppendCtx(r.Context(), slog.String("session_id", sessionId))

	if _, err := c.sessionService.Snapshot(sessionId); err != nil {
		c.respondSessionError(w, r, err)
		return
	}

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	writer := &connWriter{conn: conn}

	br := bridge.NewResource(func(cmd bridge.Command) error {
		return writer.Write(&Output{Type: "PLAYER_COMMAND", Payload: cmd})
	}, c.logger)

	if err := c.sessionService.BindMedia(sessionId, br); err != nil {
		c.logger.WarnContext(ctx, "failed to bind media resource", "error", err)
		writer.Write(&Output{Type: "ERROR", Payload: map[string]string{"error": "media already bound"}})
		return
	}
	defer c.sessionService.UnbindMedia(sessionId)

	unsubscribe, err := c.sessionService.SubscribeState(sessionId, func(_, next playback.State) {
		if err := writer.Write(&Output{Type: "STATE_UPDATED", Payload: next}); err != nil {
			c.logger.DebugContext(ctx, "failed to write state update", "error", err)
		}
	})
	if err != nil {
		c.logger.WarnContext(ctx, "failed to subscribe to state", "error", err)
		return
	}
	defer unsubscribe()

	state, _ := c.sessionService.Snapshot(sessionId)
	sentences, _ := c.sessionService.Sentences(sessionId)
	if err := writer.Write(&Output{Type: "SESSION_STATE", Payload: map[string]any{
		"state":     state,
		"sentences": sentences,
	}}); err != nil {
		c.logger.WarnContext(ctx, "failed to write session state", "error", err)
		return
	}

	if err := c.getWSRouter(sessionId, br, writer).ServeConn(ctx, conn); err != nil {
		c.logger.InfoContext(ctx, "connection closed", "error", err)
	}
}

func (c *controller) getWSRouter(sessionId string, br *bridge.Resource, writer *connWriter) *wsrouter.WSRouter {
	mux := wsrouter.New()

	mux.Handle("ALIVE", handleWS(c, writer, func(context.Context, EmptyInput) error {
		return nil
	}))

	// player
	mux.Handle("PLAY", handleWS(c, writer, func(context.Context, EmptyInput) error {
		_, err := c.sessionService.Play(sessionId)
		return err
	}))
	mux.Handle("PAUSE", handleWS(c, writer, func(context.Context, EmptyInput) error {
		_, err := c.sessionService.Pause(sessionId)
		return err
	}))
	mux.Handle("SEEK", handleWS(c, writer, func(_ context.Context, input SeekInput) error {
		_, err := c.sessionService.Seek(&session.SeekParams{
			SessionId: sessionId,
			Time:      input.Time,
			Source:    domain.ParseSeekSource(input.Source),
		})
		return err
	}))
	mux.Handle("SET_VOLUME", handleWS(c, writer, func(_ context.Context, input SetVolumeInput) error {
		_, err := c.sessionService.SetVolume(&session.SetVolumeParams{
			SessionId: sessionId,
			Volume:    input.Volume,
		})
		return err
	}))
	mux.Handle("TOGGLE_MUTE", handleWS(c, writer, func(context.Context, EmptyInput) error {
		_, err := c.sessionService.ToggleMute(sessionId)
		return err
	}))

	// highlights
	mux.Handle("PLAY_HIGHLIGHTS", handleWS(c, writer, func(context.Context, EmptyInput) error {
		_, err := c.sessionService.PlayHighlights(sessionId)
		return err
	}))
	mux.Handle("STOP_HIGHLIGHTS", handleWS(c, writer, func(context.Context, EmptyInput) error {
		_, err := c.sessionService.StopHighlights(sessionId)
		return err
	}))
	mux.Handle("NAVIGATE_PREVIOUS", handleWS(c, writer, func(context.Context, EmptyInput) error {
		_, err := c.sessionService.NavigatePrevious(sessionId)
		return err
	}))
	mux.Handle("NAVIGATE_NEXT", handleWS(c, writer, func(context.Context, EmptyInput) error {
		_, err := c.sessionService.NavigateNext(sessionId)
		return err
	}))

	// transcript
	mux.Handle("TOGGLE_SENTENCE", handleWS(c, writer, func(ctx context.Context, input ToggleSentenceInput) error {
		_, err := c.sessionService.ToggleSentence(ctx, &session.ToggleSentenceParams{
			SessionId:  sessionId,
			SentenceId: input.SentenceId,
			IsSelected: input.IsSelected,
		})
		return err
	}))

	// native events reported by the client-hosted media element
	mux.Handle("MEDIA_EVENT", handleWS(c, writer, func(_ context.Context, input MediaEventInput) error {
		br.HandleEvent(mediasync.Event{
			Type:        mediasync.EventType(input.Event),
			CurrentTime: input.CurrentTime,
			Duration:    input.Duration,
			Message:     input.Message,
		})
		return nil
	}))

	mux.OnError(func(ctx context.Context, _ *websocket.Conn, messageType string, err error) error {
		c.logger.WarnContext(ctx, "failed to handle message", "type", messageType, "error", err)
		return nil
	})

	return mux
}

type EmptyInput struct{}

type SeekInput struct {
	Time   float64 `json:"time" validate:"gte=0"`
	Source string  `json:"source"`
}

type SetVolumeInput struct {
	Volume float64 `json:"volume" validate:"gte=0,lte=1"`
}

type ToggleSentenceInput struct {
	SentenceId string `json:"sentence_id" validate:"required"`
	IsSelected bool   `json:"is_selected"`
}

type MediaEventInput struct {
	Event       string  `json:"event" validate:"required"`
	CurrentTime float64 `json:"current_time"`
	Duration    float64 `json:"duration"`
	Message     string  `json:"message"`
}

// handleWS decodes and validates the payload into the handler's input type.
// Validation failures are reported back on the connection, not treated as
// handler errors.
func handleWS[T any](c *controller, writer *connWriter, fn func(ctx context.Context, input T) error) wsrouter.HandlerFunc {
	return func(ctx context.Context, _ *websocket.Conn, payload json.RawMessage) error {
		var input T
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &input); err != nil {
				return fmt.Errorf("failed to unmarshal payload: %w", err)
			}
		}

		if validationErrors, ok := c.validate.Validate(input); !ok {
			return writer.Write(&Output{Type: "VALIDATION_ERROR", Payload: map[string]any{
				"message_type": wsrouter.GetMessageTypeFromCtx(ctx),
				"errors":       validationErrors,
			}})
		}

		return fn(ctx, input)
	}
}
