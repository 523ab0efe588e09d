// internal/deck/compose.go
package deck

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"foodswipe/internal/common/logger"
	"foodswipe/internal/models"
)

// Scorer supplies an opaque total-ordering key for the exploration re-rank.
// The composer does not interpret the score beyond "higher is better".
type Scorer interface {
	Score(r models.Restaurant) float64
}

// Input carries everything a single composition needs. All fields are
// already-fetched in-memory data; Compose performs no I/O.
type Input struct {
	Restaurants []models.Restaurant
	Swiped      map[string]bool // restaurant ids already swiped in Context
	Filters     models.FilterConfiguration
	Profile     *models.ProfilePreferences
	Location    *models.Coordinate
	Context     models.SwipeContext

	// TutorialActive pins the reserved tutorial restaurants to the front.
	// Personal context only.
	TutorialActive bool

	// SwipeCount is the user's total prior swipe count; it gates the
	// exploration re-rank. Personal context only.
	SwipeCount int

	Scorer Scorer

	// Rand drives the head shuffle. Nil falls back to a time-seeded source;
	// tests inject a fixed seed to assert exact permutations.
	Rand *rand.Rand
}

// Composer turns the session inputs into an ordered deck.
type Composer struct {
	config Config
	logger logger.Logger
}

func NewComposer(config Config, log logger.Logger) *Composer {
	return &Composer{
		config: config,
		logger: log.WithFields(map[string]interface{}{"component": "deck-composer"}),
	}
}

// Compose builds the deck: drop swiped restaurants, apply the hard filters
// when any is active (otherwise the soft profile match), pin the tutorial
// restaurants, and head-shuffle re-rank when enough history exists. It is
// pure and synchronous; malformed inputs degrade instead of erroring.
func (c *Composer) Compose(input Input) []models.Restaurant {
	survivors := make([]models.Restaurant, 0, len(input.Restaurants))

	hard := HasAnyImmediateFilter(input.Filters)
	for _, r := range input.Restaurants {
		if input.Swiped[r.ID] {
			continue
		}
		if hard {
			if !PassesFilters(r, input.Filters, input.Location) {
				continue
			}
		} else if !MatchesProfile(r, input.Profile) {
			continue
		}
		survivors = append(survivors, r)
	}

	if input.Context.Personal() && input.TutorialActive {
		survivors = c.pinTutorial(survivors)
	}

	reranked := false
	if input.Context.Personal() && input.Scorer != nil && input.SwipeCount >= c.config.RerankSwipeThreshold {
		survivors = c.rerank(survivors, input.Scorer, input.Rand)
		reranked = true
	}

	c.logger.Debug("deck composed", map[string]interface{}{
		"context":    input.Context.String(),
		"input":      len(input.Restaurants),
		"deckSize":   len(survivors),
		"hardFilter": hard,
		"reranked":   reranked,
	})

	return survivors
}

// pinTutorial moves the reserved tutorial restaurants to the front, first
// name before second, with everything else keeping its prior relative order.
// Ordering only; membership is untouched.
func (c *Composer) pinTutorial(restaurants []models.Restaurant) []models.Restaurant {
	pinned := make([]models.Restaurant, 0, 2)
	rest := make([]models.Restaurant, 0, len(restaurants))

	var first, second *models.Restaurant
	for i := range restaurants {
		switch restaurants[i].Name {
		case c.config.TutorialFirst:
			if first == nil {
				first = &restaurants[i]
				continue
			}
		case c.config.TutorialSecond:
			if second == nil {
				second = &restaurants[i]
				continue
			}
		}
		rest = append(rest, restaurants[i])
	}

	if first != nil {
		pinned = append(pinned, *first)
	}
	if second != nil {
		pinned = append(pinned, *second)
	}
	return append(pinned, rest...)
}

// rerank sorts descending by score, then Fisher-Yates shuffles the top
// HeadFraction slice (rounded up). The tail keeps its score order so overall
// quality bias survives while the least-decisive head gains novelty.
func (c *Composer) rerank(restaurants []models.Restaurant, scorer Scorer, rnd *rand.Rand) []models.Restaurant {
	if len(restaurants) < 2 {
		return restaurants
	}

	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	scored := make([]scoredRestaurant, len(restaurants))
	for i, r := range restaurants {
		scored[i] = scoredRestaurant{restaurant: r, score: scorer.Score(r)}
	}
	// Stable so equal scores keep their pre-rerank relative order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	head := int(math.Ceil(float64(len(scored)) * c.config.HeadFraction))
	if head > len(scored) {
		head = len(scored)
	}

	for i := head - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		scored[i], scored[j] = scored[j], scored[i]
	}

	out := make([]models.Restaurant, len(scored))
	for i, s := range scored {
		out[i] = s.restaurant
	}
	return out
}

type scoredRestaurant struct {
	restaurant models.Restaurant
	score      float64
}
