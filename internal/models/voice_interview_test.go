package models

import (
	"testing"
	"time"
)

func TestVoiceInterview_UpsertResponse(t *testing.T) {
	v := &VoiceInterview{
		Questions: []InterviewQuestion{{ID: "q1"}, {ID: "q2"}},
	}

	v.UpsertResponse(InterviewResponse{QuestionID: "q2", Response: "first"})
	v.UpsertResponse(InterviewResponse{QuestionID: "q1", Response: "hello"})
	v.UpsertResponse(InterviewResponse{QuestionID: "q2", Response: "second"})

	if len(v.Responses) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(v.Responses))
	}

	r, ok := v.ResponseFor("q2")
	if !ok || r.Response != "second" {
		t.Errorf("ResponseFor(q2) = %+v, %v; want overwritten response", r, ok)
	}
	if _, ok := v.ResponseFor("q3"); ok {
		t.Error("ResponseFor(q3) should not exist")
	}
}

func TestVoiceInterview_HasQuestion(t *testing.T) {
	v := &VoiceInterview{Questions: []InterviewQuestion{{ID: "a"}}}
	if !v.HasQuestion("a") {
		t.Error("expected question a")
	}
	if v.HasQuestion("b") {
		t.Error("unexpected question b")
	}
}

func TestIndustryInsight_IsStale(t *testing.T) {
	now := time.Now()
	insight := &IndustryInsight{NextUpdate: now.Add(time.Hour)}
	if insight.IsStale(now) {
		t.Error("insight should be current")
	}
	if !insight.IsStale(now.Add(2 * time.Hour)) {
		t.Error("insight should be stale")
	}
}

func TestApplicationStatus_IsValid(t *testing.T) {
	tests := []struct {
		status ApplicationStatus
		want   bool
	}{
		{ApplicationPending, true},
		{ApplicationReviewed, true},
		{ApplicationShortlisted, true},
		{ApplicationRejected, true},
		{"hired", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := tt.status.IsValid(); got != tt.want {
			t.Errorf("%q.IsValid() = %v, want %v", tt.status, got, tt.want)
		}
	}
}
