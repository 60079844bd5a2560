package usecases

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/orris-inc/resinfo/internal/shared/errors"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_.@-]+$`)

var validate = func() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		return identifierPattern.MatchString(fl.Field().String())
	})
	return v
}()

// checkIdentifier accepts interface, ubus method and chart names. Anything
// else never reaches a command line and is reported as an invalid argument
// of source.
func checkIdentifier(source, s string) error {
	if err := validate.Var(s, "required,max=64,identifier"); err != nil {
		return apperrors.NewInvalidError(source, fmt.Sprintf("rejected identifier %q", s))
	}
	return nil
}

// parseLines reads the logs `lines` parameter: missing, non-numeric or
// non-positive values use def; large values are capped at limit.
func parseLines(raw string, present bool, def, limit int) int {
	if !present {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	if n > limit {
		return limit
	}
	return n
}
