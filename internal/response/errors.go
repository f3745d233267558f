package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Contact validation ────────────────────────────────────────────
	ErrMissingContact ErrCode = "MISSING_CONTACT"
	ErrInvalidEmail   ErrCode = "INVALID_EMAIL"
	ErrInvalidPhone   ErrCode = "INVALID_PHONE"
	ErrInvalidYoName  ErrCode = "INVALID_YO_NAME"

	// ─── Selection ─────────────────────────────────────────────────────
	ErrNoClassesSelected ErrCode = "NO_CLASSES_SELECTED"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "The request payload is invalid."

	// ─── Contact validation ────────────────────────────────────────────
	case ErrMissingContact:
		return "Please provide an email address, phone number or Yo username."
	case ErrInvalidEmail:
		return "That doesn't look like a valid email address."
	case ErrInvalidPhone:
		return "That doesn't look like a valid Australian phone number."
	case ErrInvalidYoName:
		return "That doesn't look like a valid Yo username."

	// ─── Selection ─────────────────────────────────────────────────────
	case ErrNoClassesSelected:
		return "Please select at least one class."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "The requested resource was not found."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Something went wrong on our end. Please try again."
	default:
		return "An unexpected error occurred."
	}
}
