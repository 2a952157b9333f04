package session

import (
	"fmt"

	"github.com/snipcast/server/internal/domain"
	"github.com/snipcast/server/internal/playback"
)

func (s *service) Play(sessionId string) (playback.State, error) {
	return s.dispatch(sessionId, playback.Play{})
}

func (s *service) Pause(sessionId string) (playback.State, error) {
	return s.dispatch(sessionId, playback.Pause{})
}

type SeekParams struct {
	SessionId string
	Time      float64
	Source    domain.SeekSource
}

func (s *service) Seek(params *SeekParams) (playback.State, error) {
	return s.dispatch(params.SessionId, playback.RequestSeek{
		Time:   params.Time,
		Source: params.Source,
	})
}

type SetVolumeParams struct {
	SessionId string
	Volume    float64
}

func (s *service) SetVolume(params *SetVolumeParams) (playback.State, error) {
	return s.dispatch(params.SessionId, playback.SetVolume{Volume: params.Volume})
}

func (s *service) ToggleMute(sessionId string) (playback.State, error) {
	return s.dispatch(sessionId, playback.ToggleMute{})
}

func (s *service) dispatch(sessionId string, intent playback.Intent) (playback.State, error) {
	sess, err := s.getSession(sessionId)
	if err != nil {
		return playback.State{}, fmt.Errorf("failed to get session: %w", err)
	}

	sess.store.Dispatch(intent)

	return sess.store.State(), nil
}
