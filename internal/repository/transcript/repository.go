// Package transcript defines the storage contract for timed transcripts
// and their sentence selection flags. Selection is transcript data, not
// playback state, so it may outlive a playback session.
package transcript

import (
	"errors"

	"github.com/snipcast/server/internal/domain"
)

var (
	ErrTranscriptNotFound = errors.New("transcript not found")
	ErrSentenceNotFound   = errors.New("sentence not found")
)

type SetTranscriptParams struct {
	VideoId   string
	Sentences []domain.Sentence
}

type UpdateSentenceSelectionParams struct {
	VideoId    string
	SentenceId string
	IsSelected bool
}
