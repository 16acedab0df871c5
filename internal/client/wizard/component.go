// Package wizard implements the multi-step onboarding flow: a state
// machine over the credentials step and the dynamically configured pages.
package wizard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nstepanova/onboard/internal/models"
)

// Kind enumerates the recognized dynamic components. The set is closed:
// every Kind carries its own fields, validation and payload extraction,
// so adding one forces all three to be defined.
type Kind int

const (
	// KindAboutMe is a free-text field.
	KindAboutMe Kind = iota
	// KindBirthdate is a date field constrained to the past.
	KindBirthdate
	// KindAddress is the street/city/state/zip group.
	KindAddress
)

var kindNames = map[string]Kind{
	"aboutme":   KindAboutMe,
	"birthdate": KindBirthdate,
	"address":   KindAddress,
}

// String names the kind for display.
func (k Kind) String() string {
	switch k {
	case KindAboutMe:
		return "About Me"
	case KindBirthdate:
		return "Birthdate"
	case KindAddress:
		return "Address"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Normalize lowercases a component name and strips all whitespace, so
// "About Me" and "aboutMe" both resolve to "aboutme".
func Normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}

// KindFor resolves a configured component name to its Kind. The second
// return is false for unrecognized names, which callers skip silently.
func KindFor(name string) (Kind, bool) {
	k, ok := kindNames[Normalize(name)]
	return k, ok
}

// KindsForPage filters the fetched configuration to the given page and
// resolves the recognized kinds in configuration order.
func KindsForPage(configs []models.ComponentConfig, page int) []Kind {
	var kinds []Kind
	for _, c := range configs {
		if c.Page != page {
			continue
		}
		if k, ok := KindFor(c.Name); ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Form holds the raw user input collected across the wizard.
type Form struct {
	Email    string
	Password string
	AboutMe  string
	// Birthdate is the raw input in YYYY-MM-DD form.
	Birthdate string
	Street    string
	City      string
	State     string
	Zip       string
}

// Set routes an input value to the form field with the given key.
// Unknown keys are ignored.
func (f *Form) Set(key, value string) {
	switch key {
	case "email":
		f.Email = value
	case "password":
		f.Password = value
	case "aboutMe":
		f.AboutMe = value
	case "birthdate":
		f.Birthdate = value
	case "street":
		f.Street = value
	case "city":
		f.City = value
	case "state":
		f.State = value
	case "zip":
		f.Zip = value
	}
}

// Field describes one input a Kind renders.
type Field struct {
	// Key is the payload key and Form routing key.
	Key string
	// Label is the prompt shown to the user.
	Label string
}

// Fields returns the inputs the kind renders, in display order.
func (k Kind) Fields() []Field {
	switch k {
	case KindAboutMe:
		return []Field{{Key: "aboutMe", Label: "About Me"}}
	case KindBirthdate:
		return []Field{{Key: "birthdate", Label: "Birthdate (YYYY-MM-DD)"}}
	case KindAddress:
		return []Field{
			{Key: "street", Label: "Street"},
			{Key: "city", Label: "City"},
			{Key: "state", Label: "State"},
			{Key: "zip", Label: "Zip"},
		}
	}
	return nil
}

// Validation errors for the dynamic pages.
var (
	ErrAboutMeRequired   = errors.New("about me is required")
	ErrBirthdateRequired = errors.New("birthdate is required")
	ErrBirthdateInvalid  = errors.New("please enter a valid birthdate in the past")
	ErrAddressIncomplete = errors.New("all address fields are required")
	ErrZipInvalid        = errors.New("zip code must be exactly 5 digits")
)

// Validate checks the form inputs belonging to the kind. A kind present
// on the current page is required by definition.
func (k Kind) Validate(f Form, now time.Time) error {
	switch k {
	case KindAboutMe:
		if strings.TrimSpace(f.AboutMe) == "" {
			return ErrAboutMeRequired
		}
	case KindBirthdate:
		if f.Birthdate == "" {
			return ErrBirthdateRequired
		}
		t, err := time.Parse("2006-01-02", f.Birthdate)
		if err != nil || !t.Before(now) {
			return ErrBirthdateInvalid
		}
	case KindAddress:
		for _, v := range []string{f.Street, f.City, f.State, f.Zip} {
			if strings.TrimSpace(v) == "" {
				return ErrAddressIncomplete
			}
		}
		if !zipPattern.MatchString(f.Zip) {
			return ErrZipInvalid
		}
	}
	return nil
}

// Payload extracts the kind's fields from the form for the partial
// update sent to the server.
func (k Kind) Payload(f Form) map[string]any {
	switch k {
	case KindAboutMe:
		return map[string]any{"aboutMe": f.AboutMe}
	case KindBirthdate:
		return map[string]any{"birthdate": f.Birthdate}
	case KindAddress:
		return map[string]any{
			"street": f.Street,
			"city":   f.City,
			"state":  f.State,
			"zip":    f.Zip,
		}
	}
	return nil
}
