package validation

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator adapts go-playground/validator to echo. One instance is shared
// between echo's binder hook and the controllers.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New()}
}

// Core exposes the underlying validate instance for direct struct checks.
func (v *Validator) Core() *validator.Validate { return v.v }

func (v *Validator) Validate(i interface{}) error {
	err := v.v.Struct(i)
	if err == nil {
		return nil
	}

	// Turn tag failures into a message a client can act on instead of the
	// library's internal dump.
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fmt.Sprintf("%s fails %q", fe.Field(), fe.Tag()))
		}
		return echo.NewHTTPError(http.StatusBadRequest, strings.Join(parts, "; "))
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
