package validator

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	playground "github.com/go-playground/validator/v10"
)

// одно нарушение правила для конкретного поля
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// карта поле -> сообщение, возвращается как error при неудачной валидации
type Errors map[string]string

func (e Errors) Error() string {
	fields := e.Fields()
	parts := make([]string, 0, len(fields))
	for _, fe := range fields {
		parts = append(parts, fe.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ошибки отсортированные по имени поля
func (e Errors) Fields() []FieldError {
	fields := make([]FieldError, 0, len(e))
	for field, message := range e {
		fields = append(fields, FieldError{Field: field, Message: message})
	}

	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Field < fields[j].Field
	})

	return fields
}

type Validator struct {
	Errors Errors
}

// создает новый валидатор с пустой картой ошибок
func New() *Validator {
	return &Validator{Errors: make(Errors)}
}

func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// возвращает true если Errors map не содержит ошибок
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// nil если ошибок нет, иначе копия карты ошибок
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}

	errs := make(Errors, len(v.Errors))
	for k, msg := range v.Errors {
		errs[k] = msg
	}

	return errs
}

// Rule возвращает сообщение и false, если значение нарушает правило.
type Rule[T any] func(value T) (string, bool)

// CheckField прогоняет правила по порядку и записывает только первое нарушение.
func CheckField[T any](v *Validator, key string, value T, rules ...Rule[T]) {
	for _, rule := range rules {
		if message, ok := rule(value); !ok {
			v.AddError(key, message)
			return
		}
	}
}

// длина считается в символах, а не в байтах
func MinChars(n int, message string) Rule[string] {
	return func(value string) (string, bool) {
		return message, utf8.RuneCountInString(value) >= n
	}
}

// момент равный now проходит, строго позже - нет
func NotAfter(now time.Time, message string) Rule[time.Time] {
	return func(value time.Time) (string, bool) {
		return message, !value.After(now)
	}
}

var emailChecker = playground.New()

func Email(message string) Rule[string] {
	return func(value string) (string, bool) {
		return message, emailChecker.Var(value, "required,email") == nil
	}
}
