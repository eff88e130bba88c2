// Package form держит состояние формы регистрации между вводом и отправкой.
package form

import (
	"time"

	"github.com/Segren/registration/internal/data"
	"github.com/Segren/registration/internal/validator"
)

type State int

const (
	StateClean State = iota
	StateInvalid
)

func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// результат одной отправки формы
type Outcome struct {
	Registered   bool
	Registration *data.Registration
	Errors       validator.Errors
}

type Controller struct {
	values data.RegistrationForm
	errors validator.Errors
	state  State
	clock  func() time.Time
}

func New(clock func() time.Time) *Controller {
	if clock == nil {
		clock = time.Now
	}

	return &Controller{
		values: data.NewRegistrationForm(),
		errors: validator.Errors{},
		state:  StateClean,
		clock:  clock,
	}
}

// ошибки поля не сбрасываются до следующей отправки
func (c *Controller) Update(field, value string) error {
	return c.values.Set(field, value)
}

// Submit каждый раз проверяет все поля заново и целиком заменяет карту ошибок.
// Значения полей при этом не сбрасываются.
func (c *Controller) Submit() Outcome {
	v := validator.New()

	reg := c.values.Coerce(v)
	data.ValidateRegistration(v, reg, c.clock())

	c.errors = v.Errors
	if v.Valid() {
		c.state = StateClean
		return Outcome{Registered: true, Registration: reg, Errors: c.Errors()}
	}

	c.state = StateInvalid
	return Outcome{Errors: c.Errors()}
}

func (c *Controller) Values() data.RegistrationForm {
	return c.values
}

func (c *Controller) Errors() validator.Errors {
	errs := make(validator.Errors, len(c.errors))
	for k, msg := range c.errors {
		errs[k] = msg
	}
	return errs
}

func (c *Controller) Error(field string) string {
	return c.errors[field]
}

func (c *Controller) State() State {
	return c.state
}
