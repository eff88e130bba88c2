package data

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Segren/registration/internal/validator"
)

var testNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func validRegistration() *Registration {
	return &Registration{
		IDNumber:    "123456789",
		FirstName:   "Al",
		LastName:    "Doe",
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Email:       "a@b.com",
	}
}

func validationErrors(t *testing.T, err error) validator.Errors {
	t.Helper()

	require.Error(t, err)
	errs, ok := err.(validator.Errors)
	require.True(t, ok, "expected validator.Errors, got %T", err)
	return errs
}

func TestRegistrationValidateSuccess(t *testing.T) {
	assert.NoError(t, validRegistration().Validate(testNow))
}

func TestIDNumberLength(t *testing.T) {
	for n := 0; n <= 12; n++ {
		reg := validRegistration()
		reg.IDNumber = strings.Repeat("7", n)

		err := reg.Validate(testNow)
		if n < 9 {
			errs := validationErrors(t, err)
			assert.Equal(t, validator.Errors{FieldIDNumber: "ID must contain at least 9 characters"}, errs, "length %d", n)
		} else {
			assert.NoError(t, err, "length %d", n)
		}
	}
}

func TestNameLength(t *testing.T) {
	tests := []struct {
		field   string
		message string
		set     func(*Registration, string)
	}{
		{FieldFirstName, "First name must contain at least 2 characters", func(r *Registration, s string) { r.FirstName = s }},
		{FieldLastName, "Last name must contain at least 2 characters", func(r *Registration, s string) { r.LastName = s }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			for _, short := range []string{"", "A"} {
				reg := validRegistration()
				tt.set(reg, short)
				errs := validationErrors(t, reg.Validate(testNow))
				assert.Equal(t, tt.message, errs[tt.field])
				assert.Len(t, errs, 1)
			}

			for _, ok := range []string{"Al", "Bob", "Montgomery"} {
				reg := validRegistration()
				tt.set(reg, ok)
				assert.NoError(t, reg.Validate(testNow))
			}
		})
	}
}

func TestDateOfBirth(t *testing.T) {
	tests := []struct {
		name  string
		dob   time.Time
		valid bool
	}{
		{"long ago", time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"yesterday", testNow.AddDate(0, 0, -1), true},
		{"exactly now", testNow, true},
		{"one second ahead", testNow.Add(time.Second), false},
		{"far future", time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := validRegistration()
			reg.DateOfBirth = tt.dob

			err := reg.Validate(testNow)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			errs := validationErrors(t, err)
			assert.Equal(t, "Date of birth must be in the past", errs[FieldDateOfBirth])
		})
	}
}

func TestEmailSyntax(t *testing.T) {
	reg := validRegistration()
	reg.Email = "abc"

	errs := validationErrors(t, reg.Validate(testNow))
	assert.Equal(t, validator.Errors{FieldEmail: "Invalid email"}, errs)
}

func TestFormValidateCollectsEveryField(t *testing.T) {
	form := RegistrationForm{
		IDNumber:    "12345",
		FirstName:   "Al",
		LastName:    "Doe",
		DateOfBirth: "2099-01-01",
		Email:       "abc",
	}

	reg, err := form.Validate(testNow)
	assert.Nil(t, reg)

	errs := validationErrors(t, err)
	assert.Equal(t, validator.Errors{
		FieldIDNumber:    "ID must contain at least 9 characters",
		FieldDateOfBirth: "Date of birth must be in the past",
		FieldEmail:       "Invalid email",
	}, errs)
}

func TestFormValidateSuccess(t *testing.T) {
	form := RegistrationForm{
		IDNumber:    "123456789",
		FirstName:   "Al",
		LastName:    "Doe",
		DateOfBirth: "1990-01-01",
		Email:       "a@b.com",
	}

	reg, err := form.Validate(testNow)
	require.NoError(t, err)
	assert.Equal(t, validRegistration(), reg)
}

func TestFormValidateIsIdempotent(t *testing.T) {
	form := RegistrationForm{IDNumber: "1", DateOfBirth: "2099-01-01", Email: "nope"}

	_, first := form.Validate(testNow)
	_, second := form.Validate(testNow)

	assert.Equal(t, validationErrors(t, first), validationErrors(t, second))
}

func TestUnparseableDate(t *testing.T) {
	for _, raw := range []string{"", "not a date", "1990-13-45", "01/02/1990"} {
		form := RegistrationForm{
			IDNumber:    "123456789",
			FirstName:   "Al",
			LastName:    "Doe",
			DateOfBirth: raw,
			Email:       "a@b.com",
		}

		_, err := form.Validate(testNow)
		errs := validationErrors(t, err)
		assert.Equal(t, validator.Errors{FieldDateOfBirth: "Invalid date"}, errs, "input %q", raw)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1990-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("1990-01-01T08:00:00+02:00")
	require.NoError(t, err)
	assert.True(t, d.Equal(time.Date(1990, 1, 1, 6, 0, 0, 0, time.UTC)))

	_, err = ParseDate("yesterday")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestFormSetOverwritesOneField(t *testing.T) {
	form := NewRegistrationForm()
	assert.Equal(t, RegistrationForm{}, form)

	require.NoError(t, form.Set(FieldFirstName, "Al"))
	require.NoError(t, form.Set(FieldEmail, "a@b.com"))
	require.NoError(t, form.Set(FieldFirstName, "Alice"))

	assert.Equal(t, RegistrationForm{FirstName: "Alice", Email: "a@b.com"}, form)
}

func TestFormSetUnknownField(t *testing.T) {
	form := RegistrationForm{FirstName: "Al"}

	err := form.Set("password", "hunter2")
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Equal(t, RegistrationForm{FirstName: "Al"}, form)
	assert.Empty(t, form.Get("password"))
}

func TestFormFromValues(t *testing.T) {
	values := url.Values{
		"idNumber":           {"123456789"},
		"email":              {"a@b.com"},
		"gorilla.csrf.Token": {"ignored"},
	}

	form := FormFromValues(values)

	assert.Equal(t, map[string]string{
		FieldIDNumber:    "123456789",
		FieldFirstName:   "",
		FieldLastName:    "",
		FieldDateOfBirth: "",
		FieldEmail:       "a@b.com",
	}, form.Values())
}
