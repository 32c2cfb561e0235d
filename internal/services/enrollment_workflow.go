package services

import (
	"strings"

	"github.com/careerkit/careerkit-service/internal/models"
)

type EnrollmentAction string

const (
	ActionEnroll  EnrollmentAction = "enroll"
	ActionApprove EnrollmentAction = "approve"
	ActionReject  EnrollmentAction = "reject"
)

// EnrollmentTransitionInput is everything the workflow needs to decide a move.
// Current is nil when the user has no enrollment for the course.
type EnrollmentTransitionInput struct {
	Current        *models.EnrollmentStatus
	Action         EnrollmentAction
	IsPremium      bool
	ActorIsCreator bool
	Notes          string
}

// EnrollmentTransition describes the state change to apply
type EnrollmentTransition struct {
	Next           models.EnrollmentStatus
	Event          models.EnrollmentEvent
	DeleteExisting bool
	SetApproval    bool
}

// NextEnrollmentState decides the enrollment state machine without touching storage.
//
//	(none)   --enroll-->  approved (free) | pending (premium)
//	rejected --enroll-->  same as (none), the rejected row is replaced
//	pending  --approve--> approved   (creator only)
//	pending  --reject-->  rejected   (creator only, notes required)
func NextEnrollmentState(in EnrollmentTransitionInput) (EnrollmentTransition, error) {
	switch in.Action {
	case ActionEnroll:
		return nextOnEnroll(in)
	case ActionApprove, ActionReject:
		return nextOnDecision(in)
	default:
		return EnrollmentTransition{}, ErrBadRequest
	}
}

func nextOnEnroll(in EnrollmentTransitionInput) (EnrollmentTransition, error) {
	t := EnrollmentTransition{}

	if in.Current != nil {
		switch *in.Current {
		case models.EnrollmentPending:
			return t, ErrEnrollmentPending
		case models.EnrollmentApproved:
			return t, ErrAlreadyEnrolled
		case models.EnrollmentRejected:
			t.DeleteExisting = true
		}
	}

	switch {
	case in.IsPremium:
		t.Next = models.EnrollmentPending
		t.Event = models.EventRequested
	default:
		t.Next = models.EnrollmentApproved
		t.Event = models.EventAutoApproved
		t.SetApproval = true
	}

	if t.DeleteExisting {
		t.Event = models.EventReenrolled
	}

	return t, nil
}

func nextOnDecision(in EnrollmentTransitionInput) (EnrollmentTransition, error) {
	t := EnrollmentTransition{}

	if !in.ActorIsCreator {
		return t, ErrUnauthorized
	}
	if in.Current == nil || *in.Current != models.EnrollmentPending {
		return t, ErrEnrollmentNotPending
	}

	if in.Action == ActionApprove {
		t.Next = models.EnrollmentApproved
		t.Event = models.EventApproved
		t.SetApproval = true
		return t, nil
	}

	if strings.TrimSpace(in.Notes) == "" {
		return t, ErrRejectionNotesRequired
	}
	t.Next = models.EnrollmentRejected
	t.Event = models.EventRejected
	return t, nil
}
