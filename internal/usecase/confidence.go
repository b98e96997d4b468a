package usecase

import "staffq/internal/domain"

// Confidence derives an answer confidence from a shortlist. It is the top
// similarity score clamped to [0, 1]; an empty shortlist has confidence 0.
func Confidence(shortlist []domain.ShortlistEntry) float64 {
	if len(shortlist) == 0 {
		return 0
	}
	top := shortlist[0].Score
	for _, e := range shortlist[1:] {
		if e.Score > top {
			top = e.Score
		}
	}
	switch {
	case top < 0:
		return 0
	case top > 1:
		return 1
	}
	return top
}
