// Package navigation derives prev/next addressability over selected
// transcript sentences from the current playback position.
package navigation

import (
	"golang.org/x/exp/slices"

	"github.com/snipcast/server/internal/domain"
)

type selectedSentence struct {
	sentence domain.Sentence
	// index of the sentence in the original sequence
	index int
}

func selectSorted(sentences []domain.Sentence) []selectedSentence {
	selected := make([]selectedSentence, 0, len(sentences))
	for i, sentence := range sentences {
		if sentence.IsSelected {
			selected = append(selected, selectedSentence{sentence: sentence, index: i})
		}
	}

	slices.SortFunc(selected, func(a, b selectedSentence) int {
		switch {
		case a.sentence.StartTime < b.sentence.StartTime:
			return -1
		case a.sentence.StartTime > b.sentence.StartTime:
			return 1
		default:
			return 0
		}
	})

	return selected
}

// containingIndex returns the position within selected whose sentence bounds
// inclusively contain currentTime, or -1. The segment gap applied during
// highlight derivation guarantees at most one match.
func containingIndex(selected []selectedSentence, currentTime float64) int {
	for i, s := range selected {
		if s.sentence.Contains(currentTime) {
			return i
		}
	}

	return -1
}

// Resolve computes the navigation state for the given sentences at
// currentTime.
func Resolve(sentences []domain.Sentence, currentTime float64) domain.NavigationState {
	selected := selectSorted(sentences)

	nav := domain.NavigationState{
		SelectedIndices:      make([]int, 0, len(selected)),
		CurrentSelectedIndex: -1,
	}
	for _, s := range selected {
		nav.SelectedIndices = append(nav.SelectedIndices, s.index)
	}

	if len(selected) == 0 {
		return nav
	}

	if i := containingIndex(selected, currentTime); i != -1 {
		nav.CurrentSelectedIndex = i
		nav.CanPrev = i > 0
		nav.CanNext = i < len(selected)-1
		return nav
	}

	// a single selected sentence is not navigable from anywhere, inside
	// or outside it
	if len(selected) == 1 {
		return nav
	}

	// playhead sits between segments
	for _, s := range selected {
		if s.sentence.StartTime < currentTime {
			nav.CanPrev = true
		}
		if s.sentence.StartTime > currentTime {
			nav.CanNext = true
		}
	}

	return nav
}

// FindPrevious resolves the sentence a backwards navigation from currentTime
// should land on, or nil if none exists.
func FindPrevious(sentences []domain.Sentence, currentTime float64) *domain.Sentence {
	selected := selectSorted(sentences)
	if len(selected) == 0 {
		return nil
	}

	if i := containingIndex(selected, currentTime); i != -1 {
		if i == 0 {
			return nil
		}
		return &selected[i-1].sentence
	}

	if len(selected) == 1 {
		return nil
	}

	// nearest selected sentence starting before the playhead
	for i := len(selected) - 1; i >= 0; i-- {
		if selected[i].sentence.StartTime < currentTime {
			return &selected[i].sentence
		}
	}

	return nil
}

// FindNext resolves the sentence a forwards navigation from currentTime
// should land on, or nil if none exists.
func FindNext(sentences []domain.Sentence, currentTime float64) *domain.Sentence {
	selected := selectSorted(sentences)
	if len(selected) == 0 {
		return nil
	}

	if i := containingIndex(selected, currentTime); i != -1 {
		if i == len(selected)-1 {
			return nil
		}
		return &selected[i+1].sentence
	}

	if len(selected) == 1 {
		return nil
	}

	// nearest selected sentence starting after the playhead
	for i := range selected {
		if selected[i].sentence.StartTime > currentTime {
			return &selected[i].sentence
		}
	}

	return nil
}
