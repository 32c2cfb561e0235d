package services

import (
	"errors"
	"fmt"

	"github.com/careerkit/careerkit-service/internal/validator"
)

// Generic error kinds. Handlers map these to HTTP status codes.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrUnauthenticated  = errors.New("user not authenticated")
	ErrUnauthorized     = errors.New("not authorized")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrBadRequest       = errors.New("bad request")
	ErrUpstreamFailure  = errors.New("upstream failure")

	// ErrProfileUpdateFailed hides the cause of any profile transaction failure
	ErrProfileUpdateFailed = errors.New("failed to update profile")
)

// Domain not-found errors
var (
	ErrUserNotFound        = fmt.Errorf("user %w", ErrNotFound)
	ErrCourseNotFound      = fmt.Errorf("course %w", ErrNotFound)
	ErrEnrollmentNotFound  = fmt.Errorf("enrollment %w", ErrNotFound)
	ErrJobNotFound         = fmt.Errorf("job %w", ErrNotFound)
	ErrApplicationNotFound = fmt.Errorf("application %w", ErrNotFound)
	ErrInterviewNotFound   = fmt.Errorf("interview %w", ErrNotFound)
	ErrInsightNotFound     = fmt.Errorf("industry insight %w", ErrNotFound)
	ErrCoverLetterNotFound = fmt.Errorf("cover letter %w", ErrNotFound)
)

const (
	MsgEnrollmentPending = "Your enrollment is pending approval. Please wait for the course creator to review."
	MsgAlreadyEnrolled   = "You are already enrolled in this course."
)

// Business rule conflicts
var (
	ErrEnrollmentPending = NewBusinessRuleError("enrollment_pending", MsgEnrollmentPending, nil)
	ErrAlreadyEnrolled   = NewBusinessRuleError("already_enrolled", MsgAlreadyEnrolled, nil)
	ErrCourseInactive    = NewBusinessRuleError("course_inactive", "This course is not accepting enrollments.", nil)
	ErrDuplicateRequest  = NewBusinessRuleError("duplicate_request", "A matching record was created concurrently.", nil)

	ErrEnrollmentNotPending = NewBusinessRuleError("enrollment_not_pending", "Only pending enrollments can be approved or rejected.", nil)

	ErrJobClosed          = NewBusinessRuleError("job_closed", "This job is no longer accepting applications.", nil)
	ErrAlreadyApplied     = NewBusinessRuleError("already_applied", "You have already applied for this job.", nil)
	ErrCannotApplyOwnJob  = NewBusinessRuleError("own_job", "You cannot apply to a job you posted.", nil)
	ErrInterviewCompleted = NewBusinessRuleError("interview_completed", "This interview has already been completed.", nil)
)

// Validation failures raised by services rather than struct tags
var (
	ErrRejectionNotesRequired = fmt.Errorf("%w: notes are required when rejecting an enrollment", ErrValidationFailed)
	ErrUnknownQuestion        = fmt.Errorf("%w: question does not belong to this interview", ErrValidationFailed)
	ErrProfileIncomplete      = fmt.Errorf("%w: complete your profile first", ErrValidationFailed)
)

// PermissionError reports an authenticated user acting on a resource they do not own
type PermissionError struct {
	UserID     string
	ResourceID uint
	Resource   string
	Action     string
	Reason     string
}

func NewPermissionError(userID string, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %s cannot %s %s %d: %s", e.UserID, e.Action, e.Resource, e.ResourceID, e.Reason)
}

func (e *PermissionError) Unwrap() error {
	return ErrUnauthorized
}

// BusinessRuleError is a conflict with a user-facing message
type BusinessRuleError struct {
	Rule    string
	Message string
	Context map[string]interface{}
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

func (e *BusinessRuleError) Error() string {
	return e.Message
}

func (e *BusinessRuleError) Unwrap() error {
	return ErrConflict
}

// validationFailed wraps struct validation errors so callers can match either
// ErrValidationFailed or validator.ValidationErrors
func validationFailed(errs validator.ValidationErrors) error {
	return fmt.Errorf("%w: %w", ErrValidationFailed, errs)
}

// validate runs struct tag validation on req
func validate(v *validator.Validator, req interface{}) error {
	if err := v.Validate(req); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			return validationFailed(errs)
		}
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	return nil
}
