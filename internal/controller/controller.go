package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/snipcast/server/internal/domain"
	"github.com/snipcast/server/internal/mediasync"
	"github.com/snipcast/server/internal/playback"
	"github.com/snipcast/server/internal/service/session"
	"github.com/snipcast/server/pkg/validator"
)

type iSessionService interface {
	CreateSession(context.Context, *session.CreateSessionParams) (session.CreateSessionResponse, error)
	CloseSession(ctx context.Context, sessionId string) error
	BindMedia(sessionId string, res mediasync.Resource) error
	UnbindMedia(sessionId string) error
	SubscribeState(sessionId string, fn func(prev, next playback.State)) (func(), error)
	Snapshot(sessionId string) (playback.State, error)
	Sentences(sessionId string) ([]domain.Sentence, error)
	Play(sessionId string) (playback.State, error)
	Pause(sessionId string) (playback.State, error)
	Seek(*session.SeekParams) (playback.State, error)
	SetVolume(*session.SetVolumeParams) (playback.State, error)
	ToggleMute(sessionId string) (playback.State, error)
	PlayHighlights(sessionId string) (playback.State, error)
	StopHighlights(sessionId string) (playback.State, error)
	NavigatePrevious(sessionId string) (playback.State, error)
	NavigateNext(sessionId string) (playback.State, error)
	ToggleSentence(context.Context, *session.ToggleSentenceParams) (playback.State, error)
}

type controller struct {
	sessionService iSessionService
	upgrader       websocket.Upgrader
	validate       *validator.Validator
	logger         *slog.Logger
}

func NewController(sessionService iSessionService, logger *slog.Logger) *controller {
	return &controller{
		sessionService: sessionService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		validate: validator.NewValidator(),
		logger:   logger,
	}
}
