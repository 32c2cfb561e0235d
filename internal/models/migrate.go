package models

// AllModels lists every persisted model in migration order
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&IndustryInsight{},
		&Course{},
		&CourseEnrollment{},
		&EnrollmentHistory{},
		&Job{},
		&JobApplication{},
		&VoiceInterview{},
		&CoverLetter{},
	}
}
