package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/snipcast/server/internal/domain"
	"github.com/snipcast/server/internal/mediasync"
	"github.com/snipcast/server/internal/playback"
	"github.com/snipcast/server/internal/repository/transcript"
)

// session is one editing session: a single-writer store, the synchronizer
// owning the media resource, the transition monitor, and a cached copy of
// the transcript the engine resolves navigation against.
type session struct {
	id      string
	videoId string
	store   *playback.Store
	sync    *mediasync.Synchronizer
	monitor *playback.Monitor

	mu        sync.RWMutex
	sentences []domain.Sentence
}

func (sess *session) cachedSentences() []domain.Sentence {
	sess.mu.RLock()
	defer sess.mu.RUnlock()

	return sess.sentences
}

func (sess *session) setSentences(sentences []domain.Sentence) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.sentences = sentences
}

type CreateSessionParams struct {
	VideoId   string
	Sentences []domain.Sentence
}

type CreateSessionResponse struct {
	SessionId string
	State     playback.State
}

func (s *service) CreateSession(ctx context.Context, params *CreateSessionParams) (CreateSessionResponse, error) {
	if err := s.transcriptRepo.SetTranscript(ctx, &transcript.SetTranscriptParams{
		VideoId:   params.VideoId,
		Sentences: params.Sentences,
	}); err != nil {
		return CreateSessionResponse{}, fmt.Errorf("failed to set transcript: %w", err)
	}

	store := playback.NewStore(s.logger)
	sess := &session{
		id:      uuid.NewString(),
		videoId: params.VideoId,
		store:   store,
		sync: mediasync.New(store, &mediasync.Config{
			Throttle: s.config.TimeUpdateThrottle,
		}, s.logger),
		monitor: playback.NewMonitor(store, &playback.MonitorConfig{
			Tolerance: s.config.TransitionTolerance,
			Cooldown:  s.config.TransitionCooldown,
		}, s.logger),
		sentences: params.Sentences,
	}

	// navigation re-derives on every time update
	store.Subscribe(func(prev, next playback.State) {
		if next.CurrentTime == prev.CurrentTime {
			return
		}
		store.Dispatch(playback.RecomputeNavigation{Sentences: sess.cachedSentences()})
	})

	store.Dispatch(playback.RecomputeNavigation{Sentences: params.Sentences})

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "session created",
		"session_id", sess.id,
		"video_id", sess.videoId,
		"sentences", len(params.Sentences),
	)

	return CreateSessionResponse{SessionId: sess.id, State: store.State()}, nil
}

// BindMedia attaches a media resource to the session. Binding while another
// resource is attached is an error; callers must unbind first.
func (s *service) BindMedia(sessionId string, res mediasync.Resource) error {
	sess, err := s.getSession(sessionId)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	if err := sess.sync.Bind(res); err != nil {
		return fmt.Errorf("failed to bind media resource: %w", err)
	}

	return nil
}

func (s *service) UnbindMedia(sessionId string) error {
	sess, err := s.getSession(sessionId)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	sess.sync.Unbind()

	return nil
}

// SubscribeState registers fn for every state transition of the session and
// returns an unsubscribe func.
func (s *service) SubscribeState(sessionId string, fn func(prev, next playback.State)) (func(), error) {
	sess, err := s.getSession(sessionId)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return sess.store.Subscribe(fn), nil
}

func (s *service) Snapshot(sessionId string) (playback.State, error) {
	sess, err := s.getSession(sessionId)
	if err != nil {
		return playback.State{}, fmt.Errorf("failed to get session: %w", err)
	}

	return sess.store.State(), nil
}

// CloseSession tears the session down: timers and listeners are released so
// nothing fires against a disposed resource. The transcript is removed once
// no other session plays the same video.
func (s *service) CloseSession(ctx context.Context, sessionId string) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionId]
	if ok {
		delete(s.sessions, sessionId)
	}
	videoInUse := false
	if ok {
		for _, other := range s.sessions {
			if other.videoId == sess.videoId {
				videoInUse = true
				break
			}
		}
	}
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	sess.monitor.Close()
	sess.sync.Close()

	if !videoInUse {
		if err := s.transcriptRepo.RemoveTranscript(ctx, sess.videoId); err != nil {
			s.logger.WarnContext(ctx, "failed to remove transcript",
				"video_id", sess.videoId,
				"error", err,
			)
		}
	}

	s.logger.InfoContext(ctx, "session closed", "session_id", sessionId)

	return nil
}
