// Package validation checks request payloads with struct tags before they
// are sent, and reports failures as the sentinel errors in internal/errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	ierrors "github.com/jrsteele09/clinic-admin-client/internal/errors"
)

// Custom tags
const (
	TagNotBlank = "notblank" // string with at least one non-space character
	TagUserID   = "user_id"  // id of the acting staff member, must be positive
)

var (
	validate  *validator.Validate
	sentinels = map[string]error{TagUserID: ierrors.ErrNoUserID}
	lock      sync.RWMutex
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Use JSON field names in messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(TagNotBlank, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = validate.RegisterValidation(TagUserID, func(fl validator.FieldLevel) bool {
		return fl.Field().Int() > 0
	})
}

// Register adds a custom tag. Failures of the tag are reported as sentinel.
// Call it from package init, before any Struct call.
func Register(tag string, fn validator.Func, sentinel error) {
	lock.Lock()
	defer lock.Unlock()
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation.Register %s: %v", tag, err))
	}
	if sentinel != nil {
		sentinels[tag] = sentinel
	}
}

// Struct validates v. The first failing field decides the returned sentinel:
// ErrInvalidRequest unless its tag was registered with another one.
func Struct(v any) error {
	lock.RLock()
	defer lock.RUnlock()

	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %w", ierrors.ErrInvalidRequest, err)
	}

	fe := verrs[0]
	sentinel, ok := sentinels[fe.Tag()]
	if !ok {
		sentinel = ierrors.ErrInvalidRequest
	}
	return fmt.Errorf("%w: %s", sentinel, message(fe))
}

func message(fe validator.FieldError) string {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch fe.Tag() {
	case "required", TagNotBlank, TagUserID:
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "gte":
		return fmt.Sprintf("%s must not be less than %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s needs at least %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "ne":
		return fmt.Sprintf("%s must not be %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%v)", field, fe.Value())
	}
}
