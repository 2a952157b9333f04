package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snipcast/server/internal/domain"
	"github.com/snipcast/server/internal/repository/transcript"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()

	s := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})

	return NewRepo(rc, time.Hour)
}

func testSentences() []domain.Sentence {
	return []domain.Sentence{
		{Id: "s1", Text: "first sentence", StartTime: 0, EndTime: 2.5, IsSelected: true},
		{Id: "s2", Text: "second sentence", StartTime: 2.5, EndTime: 5, IsSelected: false},
		{Id: "s3", Text: "third sentence", StartTime: 5, EndTime: 8, IsSelected: true, IsHighlighted: true},
	}
}

func TestSetAndGetTranscript(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	err := repo.SetTranscript(ctx, &transcript.SetTranscriptParams{
		VideoId:   "video-1",
		Sentences: testSentences(),
	})
	require.NoError(t, err)

	sentences, err := repo.GetSentences(ctx, "video-1")
	require.NoError(t, err)
	assert.Equal(t, testSentences(), sentences)
}

func TestGetSentencesNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetSentences(context.Background(), "missing")
	assert.ErrorIs(t, err, transcript.ErrTranscriptNotFound)
}

func TestSetTranscriptReplacesExisting(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetTranscript(ctx, &transcript.SetTranscriptParams{
		VideoId:   "video-1",
		Sentences: testSentences(),
	}))

	replacement := []domain.Sentence{
		{Id: "r1", Text: "replacement", StartTime: 1, EndTime: 4, IsSelected: true},
	}
	require.NoError(t, repo.SetTranscript(ctx, &transcript.SetTranscriptParams{
		VideoId:   "video-1",
		Sentences: replacement,
	}))

	sentences, err := repo.GetSentences(ctx, "video-1")
	require.NoError(t, err)
	assert.Equal(t, replacement, sentences)
}

func TestUpdateSentenceSelection(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetTranscript(ctx, &transcript.SetTranscriptParams{
		VideoId:   "video-1",
		Sentences: testSentences(),
	}))

	err := repo.UpdateSentenceSelection(ctx, &transcript.UpdateSentenceSelectionParams{
		VideoId:    "video-1",
		SentenceId: "s2",
		IsSelected: true,
	})
	require.NoError(t, err)

	sentences, err := repo.GetSentences(ctx, "video-1")
	require.NoError(t, err)
	assert.True(t, sentences[1].IsSelected)
	assert.Equal(t, "s2", sentences[1].Id)
}

func TestUpdateSentenceSelectionNotFound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetTranscript(ctx, &transcript.SetTranscriptParams{
		VideoId:   "video-1",
		Sentences: testSentences(),
	}))

	err := repo.UpdateSentenceSelection(ctx, &transcript.UpdateSentenceSelectionParams{
		VideoId:    "video-1",
		SentenceId: "missing",
		IsSelected: true,
	})
	assert.ErrorIs(t, err, transcript.ErrSentenceNotFound)
}

func TestRemoveTranscript(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetTranscript(ctx, &transcript.SetTranscriptParams{
		VideoId:   "video-1",
		Sentences: testSentences(),
	}))

	require.NoError(t, repo.RemoveTranscript(ctx, "video-1"))

	_, err := repo.GetSentences(ctx, "video-1")
	assert.ErrorIs(t, err, transcript.ErrTranscriptNotFound)
}

func TestRemoveTranscriptNotFound(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.RemoveTranscript(context.Background(), "missing")
	assert.ErrorIs(t, err, transcript.ErrTranscriptNotFound)
}
