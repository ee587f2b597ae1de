package application

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Form is what the application screen submits.
type Form struct {
	JobID       string `json:"jobId" validate:"required,max=300"`
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Phone       string `json:"phone" validate:"omitempty,phone"`
	CoverLetter string `json:"coverLetter" validate:"max=5000"`
	ResumeURL   string `json:"resumeUrl" validate:"omitempty,url,max=2048"`
	FromScreen  string `json:"fromScreen" validate:"omitempty,oneof=JobFinder SavedJobs"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (f Form) Trimmed() Form {
	f.JobID = strings.TrimSpace(f.JobID)
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.CoverLetter = strings.TrimSpace(f.CoverLetter)
	f.ResumeURL = strings.TrimSpace(f.ResumeURL)
	f.FromScreen = strings.TrimSpace(f.FromScreen)
	return f
}

var phoneRe = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{5,18}[0-9]$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	return v
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every rejected field of a Form.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid application: " + strings.Join(parts, "; ")
}

func toValidationError(errs validator.ValidationErrors) *ValidationError {
	out := &ValidationError{}
	for _, fe := range errs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "phone":
		return "must be a phone number"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
