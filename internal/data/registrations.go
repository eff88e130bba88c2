package data

import (
	"errors"
	"net/url"
	"time"

	"github.com/Segren/registration/internal/validator"
)

const (
	FieldIDNumber    = "idNumber"
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldDateOfBirth = "dateOfBirth"
	FieldEmail       = "email"
)

// порядок полей на форме
var Fields = []string{FieldIDNumber, FieldFirstName, FieldLastName, FieldDateOfBirth, FieldEmail}

const DateLayout = "2006-01-02"

var (
	ErrUnknownField = errors.New("unknown field")
	ErrInvalidDate  = errors.New("invalid date")
)

// приведенная к типам запись, готовая к валидации
type Registration struct {
	IDNumber    string    `json:"idNumber"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Email       string    `json:"email"`
}

// сырые значения полей в том виде, в каком их ввел пользователь
type RegistrationForm struct {
	IDNumber    string `json:"idNumber"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	Email       string `json:"email"`
}

func NewRegistrationForm() RegistrationForm {
	return RegistrationForm{}
}

// берем только известные поля, остальное игнорируем
func FormFromValues(values url.Values) RegistrationForm {
	form := NewRegistrationForm()
	for _, field := range Fields {
		if _, ok := values[field]; ok {
			_ = form.Set(field, values.Get(field))
		}
	}
	return form
}

func (f *RegistrationForm) field(name string) (*string, error) {
	switch name {
	case FieldIDNumber:
		return &f.IDNumber, nil
	case FieldFirstName:
		return &f.FirstName, nil
	case FieldLastName:
		return &f.LastName, nil
	case FieldDateOfBirth:
		return &f.DateOfBirth, nil
	case FieldEmail:
		return &f.Email, nil
	default:
		return nil, ErrUnknownField
	}
}

// перезаписывает ровно одно поле, без валидации
func (f *RegistrationForm) Set(name, value string) error {
	ptr, err := f.field(name)
	if err != nil {
		return err
	}
	*ptr = value
	return nil
}

func (f RegistrationForm) Get(name string) string {
	ptr, err := f.field(name)
	if err != nil {
		return ""
	}
	return *ptr
}

func (f RegistrationForm) Values() map[string]string {
	values := make(map[string]string, len(Fields))
	for _, field := range Fields {
		values[field] = f.Get(field)
	}
	return values
}

// дата из поля type=date приходит как YYYY-MM-DD, из json может прийти RFC 3339
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}

// Coerce превращает сырые значения в Registration. Непарсящаяся дата
// сразу записывается в v как ошибка поля dateOfBirth.
func (f RegistrationForm) Coerce(v *validator.Validator) *Registration {
	reg := &Registration{
		IDNumber:  f.IDNumber,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
	}

	dob, err := ParseDate(f.DateOfBirth)
	if err != nil {
		v.AddError(FieldDateOfBirth, "Invalid date")
	} else {
		reg.DateOfBirth = dob
	}

	return reg
}

func ValidateRegistration(v *validator.Validator, reg *Registration, now time.Time) {
	validator.CheckField(v, FieldIDNumber, reg.IDNumber,
		validator.MinChars(9, "ID must contain at least 9 characters"))

	validator.CheckField(v, FieldFirstName, reg.FirstName,
		validator.MinChars(2, "First name must contain at least 2 characters"))

	validator.CheckField(v, FieldLastName, reg.LastName,
		validator.MinChars(2, "Last name must contain at least 2 characters"))

	validator.CheckField(v, FieldDateOfBirth, reg.DateOfBirth,
		validator.NotAfter(now, "Date of birth must be in the past"))

	validator.CheckField(v, FieldEmail, reg.Email,
		validator.Email("Invalid email"))
}

// nil при успехе, validator.Errors при нарушениях
func (r *Registration) Validate(now time.Time) error {
	v := validator.New()
	ValidateRegistration(v, r, now)
	return v.Err()
}

// полный цикл: приведение формы и проверка всех полей
func (f RegistrationForm) Validate(now time.Time) (*Registration, error) {
	v := validator.New()

	reg := f.Coerce(v)
	ValidateRegistration(v, reg, now)

	if err := v.Err(); err != nil {
		return nil, err
	}

	return reg, nil
}
