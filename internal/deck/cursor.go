// internal/deck/cursor.go
package deck

import "foodswipe/internal/models"

// Cursor tracks the current position in a composed deck. It never clamps or
// wraps; once past the end, Current reports exhaustion and the caller stops
// advancing.
type Cursor struct {
	deck []models.Restaurant
	pos  int
}

func NewCursor(deck []models.Restaurant) *Cursor {
	return &Cursor{deck: deck}
}

// Current returns the card under the cursor, or ok=false when the deck is
// exhausted. Exhaustion is a normal state, not an error.
func (c *Cursor) Current() (models.Restaurant, bool) {
	if c.pos >= len(c.deck) {
		return models.Restaurant{}, false
	}
	return c.deck[c.pos], true
}

// Advance moves to the next card.
func (c *Cursor) Advance() {
	c.pos++
}

// Position returns the zero-based cursor index.
func (c *Cursor) Position() int {
	return c.pos
}

// Remaining returns how many cards are left, including the current one.
func (c *Cursor) Remaining() int {
	if c.pos >= len(c.deck) {
		return 0
	}
	return len(c.deck) - c.pos
}

// DistanceToCurrent returns the distance from the user to the current card
// in kilometers. ok is false when the deck is exhausted or the location is
// unknown.
func (c *Cursor) DistanceToCurrent(location *models.Coordinate) (float64, bool) {
	current, ok := c.Current()
	if !ok || location == nil {
		return 0, false
	}
	return DistanceKm(location.Lat, location.Lng, current.Lat, current.Lng), true
}
