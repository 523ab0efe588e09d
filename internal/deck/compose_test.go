// internal/deck/compose_test.go
package deck

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/jaswdr/faker"
	"github.com/stretchr/testify/assert"

	"foodswipe/internal/common/logger"
	"foodswipe/internal/models"
)

// ratingScorer orders restaurants by their star rating. Tests use distinct
// ratings so the descending order is unambiguous.
type ratingScorer struct{}

func (ratingScorer) Score(r models.Restaurant) float64 {
	return r.Rating
}

func createTestComposer() *Composer {
	return NewComposer(DefaultConfig(), logger.NewNoOpLogger())
}

// createTestDeck generates count restaurants with distinct ratings so score
// order is a total order.
func createTestDeck(count int) []models.Restaurant {
	f := faker.New()
	out := make([]models.Restaurant, count)
	for i := 0; i < count; i++ {
		out[i] = models.Restaurant{
			ID:          fmt.Sprintf("rest-%03d", i),
			Name:        f.Company().Name(),
			Address:     f.Address().StreetAddress(),
			City:        "台北市",
			District:    "大安區",
			Lat:         25.0 + float64(i)*0.001,
			Lng:         121.5 + float64(i)*0.001,
			Rating:      1.0 + float64(i)*0.1,
			ReviewCount: f.IntBetween(10, 20000),
			PriceTier:   f.IntBetween(1, 5),
			CuisineType: "中式",
		}
	}
	return out
}

func createTestInput(restaurants []models.Restaurant) Input {
	return Input{
		Restaurants: restaurants,
		Swiped:      map[string]bool{},
		Filters:     models.NewFilterConfiguration(),
		Context:     models.PersonalContext,
	}
}

func deckIDs(deck []models.Restaurant) []string {
	ids := make([]string, len(deck))
	for i, r := range deck {
		ids[i] = r.ID
	}
	return ids
}

func TestCompose_ExcludesSwiped(t *testing.T) {
	composer := createTestComposer()
	restaurants := createTestDeck(8)

	input := createTestInput(restaurants)
	input.Swiped = map[string]bool{
		"rest-001": true,
		"rest-004": true,
		"rest-007": true,
	}

	deck := composer.Compose(input)

	assert.Len(t, deck, 5)
	for _, r := range deck {
		assert.False(t, input.Swiped[r.ID], "swiped restaurant %s must not reappear", r.ID)
	}
}

func TestCompose_HardFilterWhenActive(t *testing.T) {
	composer := createTestComposer()
	restaurants := createTestDeck(10)
	restaurants[3].CuisineType = "日式"
	restaurants[6].CuisineType = "日式"

	input := createTestInput(restaurants)
	input.Filters.CuisineTypes = []string{"日式"}
	// An active hard filter must win over the soft profile match.
	input.Profile = &models.ProfilePreferences{FavoriteCuisines: []string{"中式"}}

	deck := composer.Compose(input)

	assert.Equal(t, []string{"rest-003", "rest-006"}, deckIDs(deck))
}

func TestCompose_SoftMatchWhenNoFilterActive(t *testing.T) {
	composer := createTestComposer()
	restaurants := createTestDeck(10)
	restaurants[2].MichelinStars = 1
	restaurants[5].MichelinStars = 2

	input := createTestInput(restaurants)
	input.Profile = &models.ProfilePreferences{LikesMichelin: true}

	deck := composer.Compose(input)

	assert.Equal(t, []string{"rest-002", "rest-005"}, deckIDs(deck))
}

func TestCompose_NeutralInputsKeepSourceOrder(t *testing.T) {
	composer := createTestComposer()
	restaurants := createTestDeck(6)

	deck := composer.Compose(createTestInput(restaurants))

	assert.Equal(t, deckIDs(restaurants), deckIDs(deck))
}

func TestCompose_TutorialPinning(t *testing.T) {
	cfg := DefaultConfig()

	buildRestaurants := func() []models.Restaurant {
		restaurants := createTestDeck(10)
		restaurants[4].Name = cfg.TutorialSecond
		restaurants[7].Name = cfg.TutorialFirst
		return restaurants
	}

	tests := []struct {
		name           string
		context        models.SwipeContext
		tutorialActive bool
		validateOutput func(*testing.T, []models.Restaurant)
	}{
		{
			name:           "personal tutorial pins both to the front",
			context:        models.PersonalContext,
			tutorialActive: true,
			validateOutput: func(t *testing.T, deck []models.Restaurant) {
				assert.Equal(t, cfg.TutorialFirst, deck[0].Name)
				assert.Equal(t, cfg.TutorialSecond, deck[1].Name)
				// Everything else keeps its prior relative order.
				assert.Equal(t,
					[]string{"rest-007", "rest-004", "rest-000", "rest-001", "rest-002",
						"rest-003", "rest-005", "rest-006", "rest-008", "rest-009"},
					deckIDs(deck))
			},
		},
		{
			name:           "tutorial inactive leaves order untouched",
			context:        models.PersonalContext,
			tutorialActive: false,
			validateOutput: func(t *testing.T, deck []models.Restaurant) {
				assert.Equal(t, "rest-000", deck[0].ID)
			},
		},
		{
			name:           "group context never pins",
			context:        models.GroupContext("group-42"),
			tutorialActive: true,
			validateOutput: func(t *testing.T, deck []models.Restaurant) {
				assert.Equal(t, "rest-000", deck[0].ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			composer := NewComposer(cfg, logger.NewNoOpLogger())
			input := createTestInput(buildRestaurants())
			input.Context = tt.context
			input.TutorialActive = tt.tutorialActive

			deck := composer.Compose(input)

			assert.Len(t, deck, 10, "pinning must not change membership")
			tt.validateOutput(t, deck)
		})
	}
}

func TestCompose_RerankGating(t *testing.T) {
	tests := []struct {
		name           string
		context        models.SwipeContext
		swipeCount     int
		scorer         Scorer
		expectReranked bool
	}{
		{
			name:           "below threshold keeps source order",
			context:        models.PersonalContext,
			swipeCount:     9,
			scorer:         ratingScorer{},
			expectReranked: false,
		},
		{
			name:           "at threshold reranks",
			context:        models.PersonalContext,
			swipeCount:     10,
			scorer:         ratingScorer{},
			expectReranked: true,
		},
		{
			name:           "group context never reranks",
			context:        models.GroupContext("group-42"),
			swipeCount:     50,
			scorer:         ratingScorer{},
			expectReranked: false,
		},
		{
			name:           "no scorer means no rerank",
			context:        models.PersonalContext,
			swipeCount:     50,
			scorer:         nil,
			expectReranked: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			composer := createTestComposer()
			restaurants := createTestDeck(20)

			input := createTestInput(restaurants)
			input.Context = tt.context
			input.SwipeCount = tt.swipeCount
			input.Scorer = tt.scorer
			input.Rand = rand.New(rand.NewSource(1))

			deck := composer.Compose(input)

			assert.Len(t, deck, 20)
			if tt.expectReranked {
				// Ratings ascend with the fixture index, so source order and
				// score order disagree; a rerank must move the best forward.
				assert.NotEqual(t, deckIDs(restaurants), deckIDs(deck))
				assert.Equal(t, "rest-000", deck[len(deck)-1].ID)
			} else {
				assert.Equal(t, deckIDs(restaurants), deckIDs(deck))
			}
		})
	}
}

func TestCompose_RerankShufflesHeadOnly(t *testing.T) {
	composer := createTestComposer()
	restaurants := createTestDeck(20)

	input := createTestInput(restaurants)
	input.SwipeCount = 25
	input.Scorer = ratingScorer{}
	input.Rand = rand.New(rand.NewSource(7))

	deck := composer.Compose(input)

	// Score-descending reference order.
	sorted := append([]models.Restaurant(nil), restaurants...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})

	head := int(math.Ceil(float64(len(sorted)) * composer.config.HeadFraction))

	// The tail below the shuffle head keeps strict score order.
	assert.Equal(t, deckIDs(sorted[head:]), deckIDs(deck[head:]))

	// The head is a permutation of the top-scored slice.
	assert.ElementsMatch(t, deckIDs(sorted[:head]), deckIDs(deck[:head]))
}

func TestCompose_RerankDeterministicWithSeed(t *testing.T) {
	composer := createTestComposer()
	restaurants := createTestDeck(20)

	compose := func(seed int64) []string {
		input := createTestInput(restaurants)
		input.SwipeCount = 25
		input.Scorer = ratingScorer{}
		input.Rand = rand.New(rand.NewSource(seed))
		return deckIDs(composer.Compose(input))
	}

	assert.Equal(t, compose(42), compose(42))
}

func TestCompose_RerankSingleCard(t *testing.T) {
	composer := createTestComposer()
	restaurants := createTestDeck(1)

	input := createTestInput(restaurants)
	input.SwipeCount = 25
	input.Scorer = ratingScorer{}

	deck := composer.Compose(input)

	assert.Equal(t, []string{"rest-000"}, deckIDs(deck))
}

func TestCompose_EmptyInputs(t *testing.T) {
	composer := createTestComposer()

	deck := composer.Compose(createTestInput(nil))

	assert.Empty(t, deck)
}

func TestCompose_NilSwipedMap(t *testing.T) {
	composer := createTestComposer()
	restaurants := createTestDeck(3)

	input := createTestInput(restaurants)
	input.Swiped = nil

	deck := composer.Compose(input)

	assert.Len(t, deck, 3)
}
