package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pinatlas/internal/apperr"
)

// Arg describes a single argument constraint for Checker.Args.
type Arg struct {
	Name     string
	Value    interface{}
	NotEmpty bool
}

// Checker rejects malformed inputs before any domain logic runs.
type Checker struct {
	v *validator.Validate
}

func New() *Checker {
	return &Checker{v: validator.New()}
}

// Args fails fast on the first violated constraint. Strings are the only
// scalar the domain passes around; anything else is checked for nil only.
func (c *Checker) Args(args ...Arg) error {
	for _, arg := range args {
		if arg.Value == nil {
			return apperr.NewValidation(apperr.KindRequirement, arg.Name,
				fmt.Sprintf("%s is required", arg.Name))
		}
		s, ok := arg.Value.(string)
		if !ok {
			continue
		}
		if arg.NotEmpty && strings.TrimSpace(s) == "" {
			return apperr.NewValidation(apperr.KindValue, arg.Name,
				fmt.Sprintf("%s is empty", arg.Name))
		}
	}
	return nil
}

// Email fails with a format error when the value is not a syntactically
// valid email address.
func (c *Checker) Email(value string) error {
	if err := c.v.Var(value, "required,email"); err != nil {
		return apperr.NewValidation(apperr.KindFormat, "email",
			fmt.Sprintf("%s is not an e-mail", value))
	}
	return nil
}

// Latitude checks the latitude range.
func (c *Checker) Latitude(value float64) error {
	if err := c.v.Var(value, "latitude"); err != nil {
		return apperr.NewValidation(apperr.KindValue, "latitude",
			fmt.Sprintf("%v is not a valid latitude", value))
	}
	return nil
}

// Longitude checks the longitude range.
func (c *Checker) Longitude(value float64) error {
	if err := c.v.Var(value, "longitude"); err != nil {
		return apperr.NewValidation(apperr.KindValue, "longitude",
			fmt.Sprintf("%v is not a valid longitude", value))
	}
	return nil
}

// Coordinates checks both coordinate ranges at once.
func (c *Checker) Coordinates(latitude, longitude float64) error {
	if err := c.Latitude(latitude); err != nil {
		return err
	}
	return c.Longitude(longitude)
}

// ID parses a hex object id, failing with a type error on malformed input.
func (c *Checker) ID(name, value string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(value))
	if err != nil {
		return primitive.NilObjectID, apperr.NewValidation(apperr.KindType, name,
			fmt.Sprintf("%s is not a valid id", name))
	}
	return id, nil
}
