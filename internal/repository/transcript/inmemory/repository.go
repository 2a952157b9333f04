package inmemory

import (
	"context"
	"sync"

	"github.com/snipcast/server/internal/domain"
	"github.com/snipcast/server/internal/repository/transcript"
)

type repo struct {
	transcripts map[string][]domain.Sentence
	mu          sync.RWMutex
}

func NewRepo() *repo {
	return &repo{
		transcripts: make(map[string][]domain.Sentence),
	}
}

func (r *repo) SetTranscript(_ context.Context, params *transcript.SetTranscriptParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sentences := make([]domain.Sentence, len(params.Sentences))
	copy(sentences, params.Sentences)
	r.transcripts[params.VideoId] = sentences

	return nil
}

func (r *repo) GetSentences(_ context.Context, videoId string) ([]domain.Sentence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.transcripts[videoId]
	if !ok {
		return nil, transcript.ErrTranscriptNotFound
	}

	sentences := make([]domain.Sentence, len(stored))
	copy(sentences, stored)

	return sentences, nil
}

func (r *repo) UpdateSentenceSelection(_ context.Context, params *transcript.UpdateSentenceSelectionParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sentences, ok := r.transcripts[params.VideoId]
	if !ok {
		return transcript.ErrTranscriptNotFound
	}

	for i := range sentences {
		if sentences[i].Id == params.SentenceId {
			sentences[i].IsSelected = params.IsSelected
			return nil
		}
	}

	return transcript.ErrSentenceNotFound
}

func (r *repo) RemoveTranscript(_ context.Context, videoId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.transcripts[videoId]; !ok {
		return transcript.ErrTranscriptNotFound
	}
	delete(r.transcripts, videoId)

	return nil
}
