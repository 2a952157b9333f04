// Package session manages playback sessions: one state store, media
// synchronizer and transition monitor per editing session, plus the
// transcript the session plays against.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/snipcast/server/internal/domain"
	"github.com/snipcast/server/internal/repository/transcript"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

type iTranscriptRepo interface {
	SetTranscript(context.Context, *transcript.SetTranscriptParams) error
	GetSentences(ctx context.Context, videoId string) ([]domain.Sentence, error)
	UpdateSentenceSelection(context.Context, *transcript.UpdateSentenceSelectionParams) error
	RemoveTranscript(ctx context.Context, videoId string) error
}

// Config carries the engine tunables, in seconds and durations. Zero values
// fall back to the package defaults.
type Config struct {
	SegmentGap          float64
	TransitionTolerance float64
	TransitionCooldown  time.Duration
	TimeUpdateThrottle  time.Duration
}

type service struct {
	transcriptRepo iTranscriptRepo
	config         Config
	logger         *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewService(transcriptRepo iTranscriptRepo, cfg *Config, logger *slog.Logger) *service {
	s := service{
		transcriptRepo: transcriptRepo,
		logger:         logger,
		sessions:       make(map[string]*session),
	}
	if cfg != nil {
		s.config = *cfg
	}

	return &s
}

func (s *service) getSession(sessionId string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionId]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return sess, nil
}
