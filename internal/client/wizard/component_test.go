package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nstepanova/onboard/internal/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"aboutMe", "aboutme"},
		{"About Me", "aboutme"},
		{"  Birth Date ", "birthdate"},
		{"ADDRESS", "address"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in))
	}
}

func TestKindFor(t *testing.T) {
	for name, want := range map[string]Kind{
		"aboutMe":   KindAboutMe,
		"About Me":  KindAboutMe,
		"birthdate": KindBirthdate,
		"address":   KindAddress,
	} {
		k, ok := KindFor(name)
		require.True(t, ok, "name %q", name)
		assert.Equal(t, want, k, "name %q", name)
	}

	_, ok := KindFor("favoriteColor")
	assert.False(t, ok, "unrecognized names resolve to nothing")
}

func TestKindsForPage_SeedConfig(t *testing.T) {
	seed := []models.ComponentConfig{
		{Name: "aboutMe", Page: 2},
		{Name: "birthdate", Page: 3},
	}

	assert.Equal(t, []Kind{KindAboutMe}, KindsForPage(seed, 2),
		"step 2 renders exactly the About-Me field")
	assert.Equal(t, []Kind{KindBirthdate}, KindsForPage(seed, 3),
		"step 3 renders exactly the Birthdate field")
}

func TestKindsForPage_SkipsUnknownNames(t *testing.T) {
	configs := []models.ComponentConfig{
		{Name: "hobbies", Page: 2},
		{Name: "address", Page: 2},
	}
	assert.Equal(t, []Kind{KindAddress}, KindsForPage(configs, 2))
}

func TestKindValidate(t *testing.T) {
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		kind Kind
		form Form
		want error
	}{
		{"about me present", KindAboutMe, Form{AboutMe: "hello"}, nil},
		{"about me blank", KindAboutMe, Form{AboutMe: "   "}, ErrAboutMeRequired},
		{"birthdate past", KindBirthdate, Form{Birthdate: "1990-04-12"}, nil},
		{"birthdate missing", KindBirthdate, Form{}, ErrBirthdateRequired},
		{"birthdate unparseable", KindBirthdate, Form{Birthdate: "12/04/1990"}, ErrBirthdateInvalid},
		{"birthdate in the future", KindBirthdate, Form{Birthdate: "2030-01-01"}, ErrBirthdateInvalid},
		{"birthdate equal to now is not past", KindBirthdate, Form{Birthdate: "2026-08-31"}, ErrBirthdateInvalid},
		{"address complete", KindAddress, Form{Street: "1 Main St", City: "Springfield", State: "IL", Zip: "62701"}, nil},
		{"address missing city", KindAddress, Form{Street: "1 Main St", State: "IL", Zip: "62701"}, ErrAddressIncomplete},
		{"zip too short", KindAddress, Form{Street: "1 Main St", City: "Springfield", State: "IL", Zip: "627"}, ErrZipInvalid},
		{"zip non-numeric", KindAddress, Form{Street: "1 Main St", City: "Springfield", State: "IL", Zip: "ab123"}, ErrZipInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.kind.Validate(tt.form, now)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestKindPayload(t *testing.T) {
	f := Form{
		AboutMe:   "hi",
		Birthdate: "1990-04-12",
		Street:    "1 Main St",
		City:      "Springfield",
		State:     "IL",
		Zip:       "62701",
	}

	assert.Equal(t, map[string]any{"aboutMe": "hi"}, KindAboutMe.Payload(f))
	assert.Equal(t, map[string]any{"birthdate": "1990-04-12"}, KindBirthdate.Payload(f))
	assert.Equal(t, map[string]any{
		"street": "1 Main St",
		"city":   "Springfield",
		"state":  "IL",
		"zip":    "62701",
	}, KindAddress.Payload(f))
}

func TestFormSet(t *testing.T) {
	var f Form
	for _, k := range []Kind{KindAboutMe, KindBirthdate, KindAddress} {
		for _, field := range k.Fields() {
			f.Set(field.Key, "v-"+field.Key)
		}
	}
	assert.Equal(t, "v-aboutMe", f.AboutMe)
	assert.Equal(t, "v-zip", f.Zip)

	f.Set("unknown", "ignored") // no panic, no effect
	assert.Equal(t, "v-street", f.Street)
}
