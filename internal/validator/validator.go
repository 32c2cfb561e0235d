package validator

// Validator is the request validator shared by services and handlers
type Validator struct {
	business *BusinessValidator
}

func New() *Validator {
	return &Validator{business: NewBusinessValidator()}
}

// Validate runs struct tags and custom rules; it returns nil or ValidationErrors
func (v *Validator) Validate(s interface{}) error {
	if errs := v.business.Validate(s); len(errs) > 0 {
		return errs
	}
	return nil
}

// Business exposes the domain rule checks
func (v *Validator) Business() *BusinessValidator {
	return v.business
}
