// internal/common/validation/filters.go
package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "foodswipe/internal/common/errors"
	"foodswipe/internal/models"
)

// filterSchema validates filter configurations arriving from clients before
// they are applied to a session. The deck engine itself trusts its inputs;
// this is the repository/session boundary check.
const filterSchema = `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"searchTerm":       {"type": "string", "maxLength": 200},
		"priceRange": {
			"type": "array",
			"items": {"type": "integer", "minimum": 0, "maximum": 10},
			"minItems": 2,
			"maxItems": 2
		},
		"distanceRange":    {"type": "number", "minimum": 0, "maximum": 999},
		"minRating":        {"type": "number", "minimum": 0, "maximum": 5},
		"hasMichelinStars": {"type": "boolean"},
		"has500Dishes":     {"type": "boolean"},
		"hasBibGourmand":   {"type": "boolean"},
		"cuisineTypes":     {"type": "array", "items": {"type": "string"}},
		"dietaryOptions": {
			"type": "array",
			"items": {"type": "string", "enum": ["vegetarian", "vegan", "halal", "gluten-free"]}
		},
		"cities":    {"type": "array", "items": {"type": "string"}},
		"districts": {"type": "array", "items": {"type": "string"}}
	}
}`

var compiledFilterSchema = gojsonschema.NewStringLoader(filterSchema)

// ParseFilterConfiguration validates raw filter JSON against the schema and
// unmarshals it over the neutral defaults, so omitted fields keep the full
// price range and unlimited distance.
func ParseFilterConfiguration(raw []byte) (models.FilterConfiguration, error) {
	cfg := models.NewFilterConfiguration()

	result, err := gojsonschema.Validate(compiledFilterSchema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return cfg, apperrors.NewInvalidFilterFormatError(err.Error())
	}
	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			messages = append(messages, desc.String())
		}
		return cfg, apperrors.NewInvalidFilterFormatError(strings.Join(messages, "; "))
	}

	if err := json.Unmarshal(raw, &cfg); err != nil {
		return cfg, apperrors.NewInvalidFilterFormatError(err.Error())
	}

	if cfg.PriceRange[0] > cfg.PriceRange[1] {
		return cfg, apperrors.NewInvalidFilterFormatError(
			fmt.Sprintf("priceRange lower bound %d above upper bound %d", cfg.PriceRange[0], cfg.PriceRange[1]))
	}

	return cfg, nil
}
