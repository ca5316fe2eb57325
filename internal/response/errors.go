package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// Validation.
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// Resources.
	ErrSheetNotFound   ErrCode = "SHEET_NOT_FOUND"
	ErrAttemptNotFound ErrCode = "ATTEMPT_NOT_FOUND"

	// Sheet authoring.
	ErrInvalidQuestion   ErrCode = "INVALID_QUESTION"
	ErrDuplicateQuestion ErrCode = "DUPLICATE_QUESTION"
	ErrUnknownQuestion   ErrCode = "UNKNOWN_QUESTION"
	ErrOptionOutOfRange  ErrCode = "OPTION_OUT_OF_RANGE"

	// Attempt lifecycle.
	ErrAlreadySubmitted ErrCode = "ALREADY_SUBMITTED"
	ErrKeyIncomplete    ErrCode = "ANSWER_KEY_INCOMPLETE"
	ErrNoQuestions      ErrCode = "NO_QUESTIONS"

	// Rate limiting.
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// Server.
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid identifier format."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrSheetNotFound:
		return "Sheet not found."
	case ErrAttemptNotFound:
		return "Attempt not found."
	case ErrInvalidQuestion:
		return "A question must carry text and at least two options, or be a bare index-only record."
	case ErrDuplicateQuestion:
		return "Duplicate question id."
	case ErrUnknownQuestion:
		return "The question does not belong to this sheet."
	case ErrOptionOutOfRange:
		return "The option index is out of range for this question."
	case ErrAlreadySubmitted:
		return "This attempt has already been submitted."
	case ErrKeyIncomplete:
		return "The answer key does not cover every question."
	case ErrNoQuestions:
		return "This sheet has no questions to score."
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
