package validator

import (
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/careerkit/careerkit-service/internal/models"
)

var (
	paymentMethods = []string{"PayPal", "Bank Transfer", "Credit Card", "Cryptocurrency", "Other"}
	jobTypes       = []string{"Full-time", "Part-time", "Contract", "Internship"}
	remoteTypes    = []string{"Remote", "Onsite", "Hybrid"}
)

// BusinessValidator handles struct tags plus domain rules
type BusinessValidator struct {
	validate *validator.Validate
}

// NewBusinessValidator creates a new business validator
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates struct tags for any struct
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	if err := bv.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateCourseCreate validates course creation rules
func (bv *BusinessValidator) ValidateCourseCreate(req *CourseCreateRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)
	errors = append(errors, validatePricing(req.IsPremium, req.Price)...)

	return errors
}

// ValidateCourseUpdate validates a course update against the stored course
func (bv *BusinessValidator) ValidateCourseUpdate(req *CourseUpdateRequest, existing *models.Course) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	premium := existing.IsPremium
	if req.IsPremium != nil {
		premium = *req.IsPremium
	}
	price := existing.Price
	if req.Price != nil {
		price = *req.Price
	}
	errors = append(errors, validatePricing(premium, price)...)

	return errors
}

// ValidateJobCreate validates job posting rules
func (bv *BusinessValidator) ValidateJobCreate(req *JobCreateRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMin > *req.SalaryMax {
		errors = append(errors, ValidationError{
			Field:   "salary_max",
			Message: "must be greater than or equal to salary_min",
			Value:   *req.SalaryMax,
			Rule:    "business_logic",
		})
	}

	return errors
}

func validatePricing(premium bool, price float64) ValidationErrors {
	if premium && price <= 0 {
		return ValidationErrors{{
			Field:   "price",
			Message: "premium courses must have a price greater than 0",
			Value:   price,
			Rule:    "business_logic",
		}}
	}
	return nil
}

// registerBusinessRules registers custom rule tags
func (bv *BusinessValidator) registerBusinessRules() {
	bv.validate.RegisterValidation("course_level", func(fl validator.FieldLevel) bool {
		switch models.CourseLevel(fl.Field().String()) {
		case models.LevelBeginner, models.LevelIntermediate, models.LevelAdvanced:
			return true
		}
		return false
	})

	bv.validate.RegisterValidation("course_status", func(fl validator.FieldLevel) bool {
		switch models.CourseStatus(fl.Field().String()) {
		case models.CourseActive, models.CourseInactive:
			return true
		}
		return false
	})

	// Only decisions; "pending" is never a target state
	bv.validate.RegisterValidation("enrollment_decision", func(fl validator.FieldLevel) bool {
		switch models.EnrollmentStatus(fl.Field().String()) {
		case models.EnrollmentApproved, models.EnrollmentRejected:
			return true
		}
		return false
	})

	bv.validate.RegisterValidation("application_status", func(fl validator.FieldLevel) bool {
		return models.ApplicationStatus(fl.Field().String()).IsValid()
	})

	bv.validate.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		return slices.Contains(paymentMethods, strings.TrimSpace(fl.Field().String()))
	})

	bv.validate.RegisterValidation("job_type", func(fl validator.FieldLevel) bool {
		return slices.Contains(jobTypes, fl.Field().String())
	})

	bv.validate.RegisterValidation("remote_type", func(fl validator.FieldLevel) bool {
		return slices.Contains(remoteTypes, fl.Field().String())
	})
}
