package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrAdminAccessOnly    ErrCode = "ADMIN_ACCESS_ONLY"
	ErrCandidateOnly      ErrCode = "CANDIDATE_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Session lifecycle ─────────────────────────────────────────────
	ErrSessionExpired   ErrCode = "SESSION_EXPIRED"
	ErrAlreadySubmitted ErrCode = "ALREADY_SUBMITTED"
	ErrNoQuestions      ErrCode = "NO_QUESTIONS"
	ErrQuestionNotInSet ErrCode = "QUESTION_NOT_IN_SET"
	ErrInvalidOption    ErrCode = "INVALID_OPTION"
	ErrAnswerUnanswered ErrCode = "UNANSWERED_SENTINEL"
	ErrCorrectNotOption ErrCode = "CORRECT_ANSWER_NOT_AN_OPTION"
	ErrOptionsRequired  ErrCode = "OPTIONS_REQUIRED"

	// ─── External collaborators ────────────────────────────────────────
	ErrStoreUnavailable ErrCode = "STORE_UNAVAILABLE"
	ErrUploadFailed     ErrCode = "UPLOAD_FAILED"
	ErrFileRequired     ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile  ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge     ErrCode = "FILE_TOO_LARGE"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."
	case ErrCandidateOnly:
		return "This resource is restricted to exam candidates."

	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	case ErrNotFound:
		return "Resource not found."

	case ErrSessionExpired:
		return "Time is up. The exam session has expired."
	case ErrAlreadySubmitted:
		return "The exam has already been submitted."
	case ErrNoQuestions:
		return "No questions are configured for this topic."
	case ErrQuestionNotInSet:
		return "The question is not part of this exam session."
	case ErrInvalidOption:
		return "The selected option is not one of the question's choices."
	case ErrAnswerUnanswered:
		return "An unanswered selection cannot be recorded."
	case ErrCorrectNotOption:
		return "The correct answer must equal one of the options."
	case ErrOptionsRequired:
		return "MCQ questions require exactly four options and a correct answer."

	case ErrStoreUnavailable:
		return "The question store is unreachable. Please try again."
	case ErrUploadFailed:
		return "Image upload failed. You can still type your answer."
	case ErrFileRequired:
		return "A file upload is required."
	case ErrUnsupportedFile:
		return "Unsupported file type."
	case ErrFileTooLarge:
		return "The file exceeds the size limit."

	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
