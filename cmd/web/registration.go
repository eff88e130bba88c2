package main

import (
	"net/http"

	"github.com/Segren/registration/internal/data"
	"github.com/Segren/registration/internal/form"
)

// пустая форма
func (app *application) showRegistrationFormHandler(w http.ResponseWriter, r *http.Request) {
	c := form.New(app.clock)

	app.render(w, r, http.StatusOK, "register.tmpl", app.newTemplateData(r, c, false))
}

// отправка формы: значения возвращаются обратно в любом случае, аккаунт не создается
func (app *application) submitRegistrationHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 4096)

	err := r.ParseForm()
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	c, ok := app.fillController(w, r, data.FormFromValues(r.PostForm))
	if !ok {
		return
	}

	outcome := c.Submit()
	app.metrics.ObserveSubmission(outcome.Errors)

	status := http.StatusOK
	if !outcome.Registered {
		status = http.StatusUnprocessableEntity
	} else {
		app.logger.PrintInfo("registration accepted", map[string]string{
			"request_id": requestIDFromContext(r.Context()),
		})
	}

	app.render(w, r, status, "register.tmpl", app.newTemplateData(r, c, outcome.Registered))
}

// проверка без html: 200 с приведенной записью или 422 с картой ошибок
func (app *application) validateRegistrationHandler(w http.ResponseWriter, r *http.Request) {
	var input data.RegistrationForm

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	c, ok := app.fillController(w, r, input)
	if !ok {
		return
	}

	outcome := c.Submit()
	app.metrics.ObserveSubmission(outcome.Errors)

	if !outcome.Registered {
		app.failedValidationResponse(w, r, outcome.Errors)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"registration": outcome.Registration}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) fillController(w http.ResponseWriter, r *http.Request, values data.RegistrationForm) (*form.Controller, bool) {
	c := form.New(app.clock)

	for _, field := range data.Fields {
		if err := c.Update(field, values.Get(field)); err != nil {
			app.serverErrorResponse(w, r, err)
			return nil, false
		}
	}

	return c, true
}
