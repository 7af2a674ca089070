package form

import (
	"fmt"
	"regexp"
	"slices"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"school-admissions/backend/internal/model"
)

// RequiredFields must be non-empty on every submission regardless of the
// configured field set
var RequiredFields = []string{"firstName", "lastName", "dateOfBirth", "gender", "applyingForGrade"}

// DateLayout format of date-typed values
const DateLayout = "2006-01-02"

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{5,19}$`)

var validate = func() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}()

// MissingRequired lists required keys that are absent or empty
func MissingRequired(values Values) []string {
	var missing []string
	for _, name := range RequiredFields {
		if values[name] == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// CheckValues validates non-empty values against their field definitions and
// column limits. The result maps machine names to a message.
func CheckValues(values Values, active []model.FormField) map[string]string {
	problems := map[string]string{}

	for _, f := range active {
		v := values[f.Name]
		if v == "" {
			continue
		}
		if msg := checkType(f, v); msg != "" {
			problems[f.Name] = msg
		}
	}

	for key, v := range values {
		c, ok := byName[key]
		if !ok || problems[key] != "" {
			continue
		}
		if utf8.RuneCountInString(v) > c.maxLen {
			problems[key] = fmt.Sprintf("must be at most %d characters", c.maxLen)
		}
	}

	return problems
}

func checkType(f model.FormField, v string) string {
	switch f.FieldType {
	case model.FieldTypeEmail:
		if validate.Var(v, "email") != nil {
			return "must be a valid email address"
		}
	case model.FieldTypeDate:
		if validate.Var(v, "datetime="+DateLayout) != nil {
			return "must be a date in YYYY-MM-DD format"
		}
	case model.FieldTypeNumber:
		if validate.Var(v, "numeric") != nil {
			return "must be a number"
		}
	case model.FieldTypePhone:
		if validate.Var(v, "phone") != nil {
			return "must be a valid phone number"
		}
	case model.FieldTypeSelect:
		if len(f.Options) > 0 && !slices.Contains([]string(f.Options), v) {
			return "must be one of the configured options"
		}
	}
	return ""
}

// ValidEmail reports whether s is a syntactically valid email address
func ValidEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}
