package shopify

import (
	"errors"
	"strings"

	"storefront/internal/domain"
)

// Kind classifies a failed storefront call so callers can decide how to react
// without inspecting message text.
type Kind int

const (
	KindTransient Kind = iota + 1
	KindValidation
	KindNotFound
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

var (
	// ErrMissingCredentials is returned before any network call when the
	// store domain or access token is not configured.
	ErrMissingCredentials = errors.New("storefront credentials are not set")

	ErrNotFound     = domain.ErrNotFound
	ErrValidation   = errors.New("validation failed")
	ErrTransient    = errors.New("temporarily unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is returned by every Client method that reached the platform.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "Unknown error"
}

func (e *Error) Unwrap() []error {
	errs := []error{e.Kind.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (k Kind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindUnauthorized:
		return ErrUnauthorized
	case KindValidation:
		return ErrValidation
	default:
		return ErrTransient
	}
}

// KindOf reports the classification of err, or 0 when err did not come from
// the platform.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
	Code    string   `json:"code"`
}

// userErrorsToError turns mutation user errors into a single *Error. A user
// error that points at a missing cart becomes KindNotFound.
func userErrorsToError(op string, errs []userError) error {
	if len(errs) == 0 {
		return nil
	}
	for _, ue := range errs {
		if missingCart(ue) {
			return &Error{Kind: KindNotFound, Op: op, Message: ue.Message}
		}
	}
	msg := errs[0].Message
	if msg == "" {
		msg = "Unknown error"
	}
	return &Error{Kind: KindValidation, Op: op, Message: msg}
}

func missingCart(ue userError) bool {
	if len(ue.Field) > 0 && ue.Field[len(ue.Field)-1] == "cartId" {
		switch ue.Code {
		case "INVALID", "NOT_FOUND":
			return true
		}
	}
	msg := strings.ToLower(ue.Message)
	return strings.Contains(msg, "cart does not exist") || strings.Contains(msg, "cart not found")
}
