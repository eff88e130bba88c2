package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)

	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	//форма регистрации
	router.HandlerFunc(http.MethodGet, "/", app.showRegistrationFormHandler)
	router.HandlerFunc(http.MethodPost, "/register", app.submitRegistrationHandler)

	//та же проверка для json клиентов
	router.HandlerFunc(http.MethodPost, "/v1/registrations/validate", app.validateRegistrationHandler)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)

	router.Handler(http.MethodGet, "/metrics", app.metrics.Handler())

	standard := alice.New(
		app.recoverPanic, //обработчик для восстановления после паники
		app.requestID,
		app.secureHeaders,
		app.rateLimit, //обработчик для ограничения частоты запросов
		app.csrf,
	)

	return standard.Then(router)
}
