package session

import (
	"context"
	"fmt"

	"github.com/snipcast/server/internal/domain"
	"github.com/snipcast/server/internal/playback"
	"github.com/snipcast/server/internal/repository/transcript"
)

// PlayHighlights starts the highlight sequence over the currently selected
// sentences. With nothing selected the state is left unchanged.
func (s *service) PlayHighlights(sessionId string) (playback.State, error) {
	sess, err := s.getSession(sessionId)
	if err != nil {
		return playback.State{}, fmt.Errorf("failed to get session: %w", err)
	}

	sess.store.Dispatch(playback.StartHighlightSequence{
		Sentences: sess.cachedSentences(),
		Gap:       s.config.SegmentGap,
	})

	return sess.store.State(), nil
}

func (s *service) StopHighlights(sessionId string) (playback.State, error) {
	return s.dispatch(sessionId, playback.StopHighlightPlayback{})
}

func (s *service) NavigatePrevious(sessionId string) (playback.State, error) {
	sess, err := s.getSession(sessionId)
	if err != nil {
		return playback.State{}, fmt.Errorf("failed to get session: %w", err)
	}

	sess.store.Dispatch(playback.NavigatePrevious{Sentences: sess.cachedSentences()})

	return sess.store.State(), nil
}

func (s *service) NavigateNext(sessionId string) (playback.State, error) {
	sess, err := s.getSession(sessionId)
	if err != nil {
		return playback.State{}, fmt.Errorf("failed to get session: %w", err)
	}

	sess.store.Dispatch(playback.NavigateNext{Sentences: sess.cachedSentences()})

	return sess.store.State(), nil
}

type ToggleSentenceParams struct {
	SessionId  string
	SentenceId string
	IsSelected bool
}

// ToggleSentence flips a sentence's selection flag, persists it, refreshes
// the session's transcript cache and re-derives navigation.
func (s *service) ToggleSentence(ctx context.Context, params *ToggleSentenceParams) (playback.State, error) {
	sess, err := s.getSession(params.SessionId)
	if err != nil {
		return playback.State{}, fmt.Errorf("failed to get session: %w", err)
	}

	if err := s.transcriptRepo.UpdateSentenceSelection(ctx, &transcript.UpdateSentenceSelectionParams{
		VideoId:    sess.videoId,
		SentenceId: params.SentenceId,
		IsSelected: params.IsSelected,
	}); err != nil {
		return playback.State{}, fmt.Errorf("failed to update sentence selection: %w", err)
	}

	sentences, err := s.transcriptRepo.GetSentences(ctx, sess.videoId)
	if err != nil {
		return playback.State{}, fmt.Errorf("failed to get sentences: %w", err)
	}
	sess.setSentences(sentences)

	sess.store.Dispatch(playback.RecomputeNavigation{Sentences: sentences})

	return sess.store.State(), nil
}

// Sentences returns the session's current transcript view.
func (s *service) Sentences(sessionId string) ([]domain.Sentence, error) {
	sess, err := s.getSession(sessionId)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return sess.cachedSentences(), nil
}
