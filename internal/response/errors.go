package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrAdminAccessOnly   ErrCode = "ADMIN_ACCESS_ONLY"
	ErrTeacherAccessOnly ErrCode = "TEACHER_ACCESS_ONLY"
	ErrParentAccessOnly  ErrCode = "PARENT_ACCESS_ONLY"
	ErrNotYourChild      ErrCode = "NOT_YOUR_CHILD"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation        ErrCode = "VALIDATION_ERROR"
	ErrInvalidID         ErrCode = "INVALID_ID"
	ErrInvalidPayload    ErrCode = "INVALID_PAYLOAD"
	ErrStudentIDRequired ErrCode = "STUDENT_ID_REQUIRED"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound             ErrCode = "NOT_FOUND"
	ErrConflict             ErrCode = "CONFLICT"
	ErrEmailTaken           ErrCode = "EMAIL_TAKEN"
	ErrAdmissionNumberTaken ErrCode = "ADMISSION_NUMBER_TAKEN"
	ErrSubjectCodeTaken     ErrCode = "SUBJECT_CODE_TAKEN"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
// Authentication failures stay deliberately generic so responses never
// reveal whether an email is registered.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Invalid credentials."
	case ErrTokenRequired:
		return "Authentication required."
	case ErrTokenInvalid:
		return "Invalid or expired token."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "Access denied. Insufficient permissions."
	case ErrAdminAccessOnly:
		return "Admin access required."
	case ErrTeacherAccessOnly:
		return "Teacher access required."
	case ErrParentAccessOnly:
		return "Parent access required."
	case ErrNotYourChild:
		return "Access denied. Not your child."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrStudentIDRequired:
		return "Student ID required."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrEmailTaken:
		return "An account with this email already exists."
	case ErrAdmissionNumberTaken:
		return "A student with this admission number already exists."
	case ErrSubjectCodeTaken:
		return "A subject with this code already exists."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
