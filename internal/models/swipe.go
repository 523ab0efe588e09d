// internal/models/swipe.go
package models

// SwipeContext scopes swipe records to either the user's personal deck or a
// specific group's deck. The zero value is the personal context.
type SwipeContext struct {
	GroupID string `json:"groupId,omitempty"`
}

// PersonalContext is the context with no group id.
var PersonalContext = SwipeContext{}

// GroupContext returns the context scoped to the given group.
func GroupContext(groupID string) SwipeContext {
	return SwipeContext{GroupID: groupID}
}

// Personal reports whether the context is the user's personal scope.
func (c SwipeContext) Personal() bool {
	return c.GroupID == ""
}

func (c SwipeContext) String() string {
	if c.Personal() {
		return "personal"
	}
	return "group:" + c.GroupID
}

// SwipeRecord is one decision a user made about one restaurant in one
// context. Records are insert-only; only a context-scoped reset removes them.
type SwipeRecord struct {
	ID           string       `json:"id"`
	UserID       string       `json:"userId"`
	RestaurantID string       `json:"restaurantId"`
	Liked        bool         `json:"liked"`
	Context      SwipeContext `json:"context"`
}
