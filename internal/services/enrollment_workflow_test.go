package services

import (
	"errors"
	"testing"

	"github.com/careerkit/careerkit-service/internal/models"
)

func statusPtr(s models.EnrollmentStatus) *models.EnrollmentStatus { return &s }

func TestNextEnrollmentState(t *testing.T) {
	tests := []struct {
		name    string
		in      EnrollmentTransitionInput
		want    EnrollmentTransition
		wantErr error
	}{
		{
			name: "free course auto approves",
			in:   EnrollmentTransitionInput{Action: ActionEnroll},
			want: EnrollmentTransition{Next: models.EnrollmentApproved, Event: models.EventAutoApproved, SetApproval: true},
		},
		{
			name: "premium course waits for review",
			in:   EnrollmentTransitionInput{Action: ActionEnroll, IsPremium: true},
			want: EnrollmentTransition{Next: models.EnrollmentPending, Event: models.EventRequested},
		},
		{
			name:    "enroll while pending",
			in:      EnrollmentTransitionInput{Action: ActionEnroll, Current: statusPtr(models.EnrollmentPending)},
			wantErr: ErrEnrollmentPending,
		},
		{
			name:    "enroll while approved",
			in:      EnrollmentTransitionInput{Action: ActionEnroll, Current: statusPtr(models.EnrollmentApproved), IsPremium: true},
			wantErr: ErrAlreadyEnrolled,
		},
		{
			name: "re-enroll after rejection on premium",
			in:   EnrollmentTransitionInput{Action: ActionEnroll, Current: statusPtr(models.EnrollmentRejected), IsPremium: true},
			want: EnrollmentTransition{Next: models.EnrollmentPending, Event: models.EventReenrolled, DeleteExisting: true},
		},
		{
			name: "re-enroll after rejection on free",
			in:   EnrollmentTransitionInput{Action: ActionEnroll, Current: statusPtr(models.EnrollmentRejected)},
			want: EnrollmentTransition{Next: models.EnrollmentApproved, Event: models.EventReenrolled, DeleteExisting: true, SetApproval: true},
		},
		{
			name: "creator approves pending",
			in:   EnrollmentTransitionInput{Action: ActionApprove, Current: statusPtr(models.EnrollmentPending), ActorIsCreator: true},
			want: EnrollmentTransition{Next: models.EnrollmentApproved, Event: models.EventApproved, SetApproval: true},
		},
		{
			name: "creator rejects with notes",
			in:   EnrollmentTransitionInput{Action: ActionReject, Current: statusPtr(models.EnrollmentPending), ActorIsCreator: true, Notes: "no payment"},
			want: EnrollmentTransition{Next: models.EnrollmentRejected, Event: models.EventRejected},
		},
		{
			name:    "reject with blank notes",
			in:      EnrollmentTransitionInput{Action: ActionReject, Current: statusPtr(models.EnrollmentPending), ActorIsCreator: true, Notes: "   "},
			wantErr: ErrValidationFailed,
		},
		{
			name:    "non creator approves",
			in:      EnrollmentTransitionInput{Action: ActionApprove, Current: statusPtr(models.EnrollmentPending)},
			wantErr: ErrUnauthorized,
		},
		{
			name:    "approve already approved",
			in:      EnrollmentTransitionInput{Action: ActionApprove, Current: statusPtr(models.EnrollmentApproved), ActorIsCreator: true},
			wantErr: ErrConflict,
		},
		{
			name:    "unknown action",
			in:      EnrollmentTransitionInput{Action: "cancel"},
			wantErr: ErrBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextEnrollmentState(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("transition = %+v, want %+v", got, tt.want)
			}
		})
	}
}
