// internal/session/session.go
package session

import (
	"math/rand"

	"foodswipe/internal/common/validation"
	"foodswipe/internal/deck"
	"foodswipe/internal/models"
)

// Session owns one user's swipe state: the fetched inputs, the composed deck
// and the cursor. Every input mutation fully recomposes the deck and resets
// the cursor to the first card; nothing is patched incrementally, so the deck
// can never reflect a mix of old and new inputs.
//
// A session belongs to a single caller. Rapid-fire filter changes are
// expected to be coalesced (debounced) upstream; recomposition itself is
// cheap and side-effect-free, so redundant calls are safe.
type Session struct {
	composer *deck.Composer
	scorer   deck.Scorer
	rnd      *rand.Rand

	restaurants    []models.Restaurant
	swiped         map[string]bool
	filters        models.FilterConfiguration
	profile        *models.ProfilePreferences
	location       *models.Coordinate
	context        models.SwipeContext
	tutorialActive bool
	swipeCount     int

	cards  []models.Restaurant
	cursor *deck.Cursor
}

// Option configures a Session at construction.
type Option func(*Session)

// WithScorer sets the re-rank scorer.
func WithScorer(s deck.Scorer) Option {
	return func(sess *Session) { sess.scorer = s }
}

// WithRand sets the shuffle source; tests use a fixed seed.
func WithRand(r *rand.Rand) Option {
	return func(sess *Session) { sess.rnd = r }
}

// WithTutorial marks the session as mid-onboarding.
func WithTutorial() Option {
	return func(sess *Session) { sess.tutorialActive = true }
}

func New(composer *deck.Composer, context models.SwipeContext, opts ...Option) *Session {
	s := &Session{
		composer: composer,
		swiped:   map[string]bool{},
		filters:  models.NewFilterConfiguration(),
		context:  context,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.recompose()
	return s
}

func (s *Session) recompose() {
	s.cards = s.composer.Compose(deck.Input{
		Restaurants:    s.restaurants,
		Swiped:         s.swiped,
		Filters:        s.filters,
		Profile:        s.profile,
		Location:       s.location,
		Context:        s.context,
		TutorialActive: s.tutorialActive,
		SwipeCount:     s.swipeCount,
		Scorer:         s.scorer,
		Rand:           s.rnd,
	})
	s.cursor = deck.NewCursor(s.cards)
}

// SetRestaurants replaces the restaurant set, normally right after a fetch.
func (s *Session) SetRestaurants(restaurants []models.Restaurant) {
	s.restaurants = restaurants
	s.recompose()
}

// SetSwipedSet replaces the context-scoped swiped set.
func (s *Session) SetSwipedSet(swiped map[string]bool) {
	if swiped == nil {
		swiped = map[string]bool{}
	}
	s.swiped = swiped
	s.recompose()
}

// SetSwipeCount sets the user's total prior swipe count.
func (s *Session) SetSwipeCount(count int) {
	s.swipeCount = count
	s.recompose()
}

// SetFilters replaces the session filter configuration.
func (s *Session) SetFilters(filters models.FilterConfiguration) {
	s.filters = filters
	s.recompose()
}

// ApplyFilterJSON validates raw client filter JSON and applies it.
func (s *Session) ApplyFilterJSON(raw []byte) error {
	filters, err := validation.ParseFilterConfiguration(raw)
	if err != nil {
		return err
	}
	s.SetFilters(filters)
	return nil
}

// SetProfile replaces the standing profile preferences. Nil means the user
// has none.
func (s *Session) SetProfile(profile *models.ProfilePreferences) {
	s.profile = profile
	s.recompose()
}

// SetLocation replaces the user location. Nil disables distance filtering
// and display.
func (s *Session) SetLocation(location *models.Coordinate) {
	s.location = location
	s.recompose()
}

// SetTutorialActive toggles tutorial pinning.
func (s *Session) SetTutorialActive(active bool) {
	s.tutorialActive = active
	s.recompose()
}

// MarkSwiped records a local swipe decision: the restaurant joins the swiped
// set, the total count grows and the deck is recomposed. Persisting the
// record is the caller's job via the swipe repository.
func (s *Session) MarkSwiped(restaurantID string) {
	s.swiped[restaurantID] = true
	s.swipeCount++
	s.recompose()
}

// Current returns the card under the cursor; ok=false means the deck is
// exhausted.
func (s *Session) Current() (models.Restaurant, bool) {
	return s.cursor.Current()
}

// Advance moves to the next card without recording a swipe.
func (s *Session) Advance() {
	s.cursor.Advance()
}

// DistanceToCurrent returns the distance to the current card in kilometers.
func (s *Session) DistanceToCurrent() (float64, bool) {
	return s.cursor.DistanceToCurrent(s.location)
}

// Deck returns a copy of the composed deck.
func (s *Session) Deck() []models.Restaurant {
	out := make([]models.Restaurant, len(s.cards))
	copy(out, s.cards)
	return out
}

// Remaining returns how many cards are left.
func (s *Session) Remaining() int {
	return s.cursor.Remaining()
}
