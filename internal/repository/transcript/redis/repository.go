package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/snipcast/server/internal/domain"
	"github.com/snipcast/server/internal/repository/transcript"
)

type Repo struct {
	rc  *redis.Client
	exp time.Duration
}

func NewRepo(rc *redis.Client, exp time.Duration) *Repo {
	return &Repo{
		rc:  rc,
		exp: exp,
	}
}

func (r Repo) sentenceListKey(videoId string) string {
	return "transcript" + ":" + videoId + ":sentences"
}

func (r Repo) sentenceKey(videoId, sentenceId string) string {
	return "transcript" + ":" + videoId + ":sentence:" + sentenceId
}

func (r Repo) SetTranscript(ctx context.Context, params *transcript.SetTranscriptParams) error {
	listKey := r.sentenceListKey(params.VideoId)

	oldIds, err := r.rc.LRange(ctx, listKey, 0, -1).Result()
	if err != nil {
		return err
	}

	pipe := r.rc.TxPipeline()

	for _, id := range oldIds {
		pipe.Del(ctx, r.sentenceKey(params.VideoId, id))
	}
	pipe.Del(ctx, listKey)

	for _, s := range params.Sentences {
		key := r.sentenceKey(params.VideoId, s.Id)
		pipe.HSet(ctx, key,
			"id", s.Id,
			"text", s.Text,
			"start_time", s.StartTime,
			"end_time", s.EndTime,
			"is_selected", s.IsSelected,
			"is_highlighted", s.IsHighlighted,
		)
		pipe.Expire(ctx, key, r.exp)
		pipe.RPush(ctx, listKey, s.Id)
	}
	pipe.Expire(ctx, listKey, r.exp)

	_, err = pipe.Exec(ctx)
	return err
}

func (r Repo) GetSentences(ctx context.Context, videoId string) ([]domain.Sentence, error) {
	ids, err := r.rc.LRange(ctx, r.sentenceListKey(videoId), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return nil, transcript.ErrTranscriptNotFound
	}

	sentences := make([]domain.Sentence, 0, len(ids))
	for _, id := range ids {
		res := r.rc.HGetAll(ctx, r.sentenceKey(videoId, id))
		if err := res.Err(); err != nil {
			return nil, err
		}
		if len(res.Val()) == 0 {
			return nil, transcript.ErrSentenceNotFound
		}

		var s domain.Sentence
		if err := res.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan sentence: %w", err)
		}

		sentences = append(sentences, s)
	}

	return sentences, nil
}

func (r Repo) UpdateSentenceSelection(ctx context.Context, params *transcript.UpdateSentenceSelectionParams) error {
	key := r.sentenceKey(params.VideoId, params.SentenceId)

	exists, err := r.rc.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return transcript.ErrSentenceNotFound
	}

	return r.rc.HSet(ctx, key, "is_selected", params.IsSelected).Err()
}

func (r Repo) RemoveTranscript(ctx context.Context, videoId string) error {
	listKey := r.sentenceListKey(videoId)

	ids, err := r.rc.LRange(ctx, listKey, 0, -1).Result()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return transcript.ErrTranscriptNotFound
	}

	pipe := r.rc.TxPipeline()
	for _, id := range ids {
		pipe.Del(ctx, r.sentenceKey(videoId, id))
	}
	pipe.Del(ctx, listKey)

	_, err = pipe.Exec(ctx)
	return err
}
