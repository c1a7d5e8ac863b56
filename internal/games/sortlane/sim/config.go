package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// LevelConfig is the per-level record consumed by the simulation.
type LevelConfig struct {
	ID                 string
	Name               string
	LaneCount          int        `validate:"gt=0,lte=16"`
	AllowedCategories  []Category `validate:"min=1,unique,dive,category"`
	TimeLimitSeconds   float64    `validate:"gt=0"`
	TargetItemCount    int        `validate:"gt=0"`
	SpawnIntervalMs    int        `validate:"gte=0"`
	MaxConcurrentItems int        `validate:"gt=0"`
}

// TimeLimit returns the level time limit as a duration.
func (c LevelConfig) TimeLimit() time.Duration {
	return time.Duration(c.TimeLimitSeconds * float64(time.Second))
}

// SpawnInterval returns the delay between spawns as a duration.
func (c LevelConfig) SpawnInterval() time.Duration {
	return time.Duration(c.SpawnIntervalMs) * time.Millisecond
}

// Validate checks the configuration and returns a *ConfigurationError
// describing the first problem found.
func (c LevelConfig) Validate() error {
	return validateStruct(c)
}

// Tuning holds the engine constants shared by every level. World units are
// arbitrary; the presentation layer decides how they map to screen cells.
type Tuning struct {
	ItemSpeed  float64 `validate:"gt=0"` // world units per second
	ItemRadius float64 `validate:"gt=0"`

	LaneLength  float64 `validate:"gt=0"`
	LaneWidth   float64 `validate:"gt=0"`
	LaneSpacing float64 `validate:"gtefield=LaneWidth"` // distance between lane centers

	ClassifierRadius        float64 `validate:"gt=0"`
	MaxClassifiersPerLane   int     `validate:"gt=0"`
	NeighborSpacingFactor   float64 `validate:"gt=0"`
	EndpointClearanceFactor float64 `validate:"gte=0"`
	ProbeCount              int     `validate:"gte=0"`
	ProbeDistanceFactor     float64 `validate:"gte=0"`

	MaxRetries int           `validate:"gte=0"`
	RetryHold  time.Duration `validate:"gte=0"`

	CorrectPoints int `validate:"gte=0"`
}

// DefaultTuning returns the standard engine constants.
func DefaultTuning() Tuning {
	return Tuning{
		ItemSpeed:               10,
		ItemRadius:              3,
		LaneLength:              100,
		LaneWidth:               12,
		LaneSpacing:             16,
		ClassifierRadius:        4,
		MaxClassifiersPerLane:   3,
		NeighborSpacingFactor:   2.2,
		EndpointClearanceFactor: 1.5,
		ProbeCount:              8,
		ProbeDistanceFactor:     3,
		MaxRetries:              2,
		RetryHold:               1000 * time.Millisecond,
		CorrectPoints:           100,
	}
}

// Validate checks the tuning values.
func (t Tuning) Validate() error {
	return validateStruct(t)
}

// PlacementRules extracts the lane placement constants.
func (t Tuning) PlacementRules() PlacementRules {
	return PlacementRules{
		NeighborSpacingFactor:   t.NeighborSpacingFactor,
		EndpointClearanceFactor: t.EndpointClearanceFactor,
		ProbeCount:              t.ProbeCount,
		ProbeDistanceFactor:     t.ProbeDistanceFactor,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		c, ok := fl.Field().Interface().(Category)
		return ok && c.Valid()
	})
	return v
}

// validateStruct runs struct-tag validation and converts the first failure
// into a *ConfigurationError.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ConfigurationError{Field: "config", Reason: err.Error()}
	}
	fe := verrs[0]
	return &ConfigurationError{Field: fe.Field(), Reason: describeTag(fe)}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("must be greater than %s, got %v", fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("must be at least %s, got %v", fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("must be at most %s, got %v", fe.Param(), fe.Value())
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "unique":
		return "must not contain duplicates"
	case "category":
		return fmt.Sprintf("unknown category %v", fe.Value())
	case "gtefield":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
