package playback

import (
	"golang.org/x/exp/slices"

	"github.com/snipcast/server/internal/domain"
)

// DefaultSegmentGap is the minimum spacing, in seconds, enforced between
// adjacent highlight segments. Without it a sentence boundary shared by two
// selected sentences would make time-to-segment containment ambiguous.
const DefaultSegmentGap = 0.05

// DeriveSegments builds the highlight timeline from the selected sentences:
// filter to selected, sort by start time, then push each segment's start
// forward so it clears the previous segment's end by at least gap. Segments
// that collapse to zero or negative length are dropped.
func DeriveSegments(sentences []domain.Sentence, gap float64) []domain.Segment {
	if gap <= 0 {
		gap = DefaultSegmentGap
	}

	selected := make([]domain.Sentence, 0, len(sentences))
	for _, sentence := range sentences {
		if sentence.IsSelected && sentence.StartTime < sentence.EndTime {
			selected = append(selected, sentence)
		}
	}

	slices.SortFunc(selected, func(a, b domain.Sentence) int {
		switch {
		case a.StartTime < b.StartTime:
			return -1
		case a.StartTime > b.StartTime:
			return 1
		default:
			return 0
		}
	})

	segments := make([]domain.Segment, 0, len(selected))
	for _, sentence := range selected {
		segment := domain.Segment{
			Id:    sentence.Id,
			Start: sentence.StartTime,
			End:   sentence.EndTime,
		}

		if n := len(segments); n > 0 {
			prev := segments[n-1]
			if segment.Start-prev.End < gap {
				segment.Start = prev.End + gap
			}
		}

		if segment.Start >= segment.End {
			continue
		}

		segments = append(segments, segment)
	}

	return segments
}
