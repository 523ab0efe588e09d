// internal/scoring/scorer.go
package scoring

import (
	"math"

	"foodswipe/internal/models"
)

// TotalScore is the default restaurant scorer backing the exploration
// re-rank. The deck composer treats the result as an opaque ordering key.
//
// Weighted components, each normalized to 0-100:
//   - rating (50%): aggregate rating scaled from the 0-5 band
//   - review volume (30%): log-scaled review count, saturating at 10k reviews
//   - recognition (20%): Michelin stars, Bib Gourmand, 500-dishes
type TotalScore struct{}

func NewTotalScore() *TotalScore {
	return &TotalScore{}
}

func (s *TotalScore) Score(r models.Restaurant) float64 {
	rating := clamp(r.Rating/5.0*100, 0, 100)

	volume := 0.0
	if r.ReviewCount > 0 {
		volume = clamp(math.Log10(float64(r.ReviewCount))/4.0*100, 0, 100)
	}

	recognition := 0.0
	if r.MichelinStars > 0 {
		recognition += float64(r.MichelinStars) * 30
	}
	if r.BibGourmand {
		recognition += 20
	}
	if r.Has500Dishes {
		recognition += 10
	}
	recognition = clamp(recognition, 0, 100)

	return rating*0.5 + volume*0.3 + recognition*0.2
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
