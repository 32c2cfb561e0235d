package models

import (
	"time"

	"gorm.io/datatypes"
)

type InterviewStatus string

const (
	InterviewInProgress InterviewStatus = "in-progress"
	InterviewCompleted  InterviewStatus = "completed"
)

type InterviewQuestion struct {
	ID             string   `json:"id"`
	Question       string   `json:"question"`
	ExpectedPoints []string `json:"expected_points"`
	Difficulty     string   `json:"difficulty"`
	EstimatedTime  string   `json:"estimated_time"`
}

// InterviewResponse references the question it answers by id, never by position.
type InterviewResponse struct {
	QuestionID string    `json:"question_id"`
	Response   string    `json:"response"`
	RecordedAt time.Time `json:"recorded_at"`
}

type VoiceInterview struct {
	ID           uint                                   `json:"id" gorm:"primaryKey"`
	UserID       string                                 `json:"user_id" gorm:"not null;size:64;index"`
	Category     string                                 `json:"category" gorm:"size:255"`
	Language     string                                 `json:"language" gorm:"size:10;default:en"`
	Questions    datatypes.JSONSlice[InterviewQuestion] `json:"questions"`
	Responses    datatypes.JSONSlice[InterviewResponse] `json:"responses"`
	OverallScore *int                                   `json:"overall_score"`
	Feedback     *string                                `json:"feedback" gorm:"type:text"`
	Status       InterviewStatus                        `json:"status" gorm:"size:20;default:in-progress;index"`
	CompletedAt  *time.Time                             `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (VoiceInterview) TableName() string {
	return "voice_interviews"
}

func (v *VoiceInterview) IsCompleted() bool {
	return v.Status == InterviewCompleted
}

// HasQuestion reports whether questionID belongs to this interview
func (v *VoiceInterview) HasQuestion(questionID string) bool {
	for _, q := range v.Questions {
		if q.ID == questionID {
			return true
		}
	}
	return false
}

// UpsertResponse replaces the response for resp.QuestionID or appends it
func (v *VoiceInterview) UpsertResponse(resp InterviewResponse) {
	for i := range v.Responses {
		if v.Responses[i].QuestionID == resp.QuestionID {
			v.Responses[i] = resp
			return
		}
	}
	v.Responses = append(v.Responses, resp)
}

// ResponseFor returns the recorded answer for questionID, if any
func (v *VoiceInterview) ResponseFor(questionID string) (InterviewResponse, bool) {
	for _, r := range v.Responses {
		if r.QuestionID == questionID {
			return r, true
		}
	}
	return InterviewResponse{}, false
}
