// Package validation holds the registration form rules shared by the client
// and the API server.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/varlopecar/react-form/shared/domain"
)

const MinimumAge = 18

var (
	// latin letters incl. accents, hyphen, apostrophe and whitespace (nbsp too)
	nameRegex       = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\-\s\p{Zs}']+$`)
	postalCodeRegex = regexp.MustCompile(`^[0-9]{5}$`)
)

// messages maps field -> failing tag -> user facing message.
var messages = map[string]map[string]string{
	"firstName": {
		"min":        "First name must contain at least 2 characters",
		"personname": "First name contains invalid characters",
	},
	"lastName": {
		"min":        "Last name must contain at least 2 characters",
		"personname": "Last name contains invalid characters",
	},
	"email": {
		"email": "Email is not valid",
	},
	"birthDate": {
		"datetime": "Birth date is not a valid date",
		"adult":    "You must be at least 18 years old",
	},
	"city": {
		"min":        "City must contain at least 2 characters",
		"personname": "City contains invalid characters",
	},
	"postalCode": {
		"postalcode": "Postal code must contain 5 digits",
	},
}

// FieldErrors maps a form field name to the message of its first failing rule.
// It is returned as data, never panicked.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + fe[f]
	}
	return strings.Join(parts, "; ")
}

// Schema validates registration forms. The zero value is not usable, use NewRegistrationSchema.
type Schema struct {
	validate *validator.Validate
	now      func() time.Time
}

type Option func(*Schema)

// WithClock replaces time.Now for the age rule.
func WithClock(now func() time.Time) Option {
	return func(s *Schema) {
		s.now = now
	}
}

func NewRegistrationSchema(opts ...Option) *Schema {
	s := &Schema{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	// registration only fails on duplicate tag names, which these are not
	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return nameRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("postalcode", func(fl validator.FieldLevel) bool {
		return postalCodeRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("adult", func(fl validator.FieldLevel) bool {
		birth, err := domain.ParseDate(fl.Field().String())
		if err != nil {
			return false
		}
		return IsAdult(birth, s.now())
	})
	s.validate = v

	return s
}

// Validate runs every field rule and returns either a record or the errors of
// all failing fields. Within one field only the first failing rule is reported.
func (s *Schema) Validate(in domain.RegistrationInput) (domain.RegistrationRecord, FieldErrors) {
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			// only reachable on a programming error in the struct tags
			return domain.RegistrationRecord{}, FieldErrors{"form": err.Error()}
		}
		fe := make(FieldErrors, len(verrs))
		for _, ve := range verrs {
			if _, seen := fe[ve.Field()]; !seen {
				fe[ve.Field()] = message(ve.Field(), ve.Tag())
			}
		}
		return domain.RegistrationRecord{}, fe
	}

	birth, err := domain.ParseDate(in.BirthDate)
	if err != nil {
		return domain.RegistrationRecord{}, FieldErrors{"birthDate": messages["birthDate"]["datetime"]}
	}

	return domain.RegistrationRecord{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		BirthDate:  birth,
		City:       in.City,
		PostalCode: in.PostalCode,
	}, nil
}

// IsAdult reports whether someone born on birth is at least MinimumAge years
// old on the calendar day of now. Someone turning 18 tomorrow is not.
func IsAdult(birth domain.Date, now time.Time) bool {
	cutoff := domain.NewDate(now.Year()-MinimumAge, now.Month(), now.Day())
	return !birth.After(cutoff.Time)
}

func message(field, tag string) string {
	if msg, ok := messages[field][tag]; ok {
		return msg
	}
	return "Invalid value"
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}
