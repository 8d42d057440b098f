package main

import (
	"errors"
	"net/http"

	"github.com/protomem/todoit/internal/ctxstore"
	"github.com/protomem/todoit/internal/model"
	"github.com/protomem/todoit/internal/response"
)

func (app *application) reportError(r *http.Request, err error) {
	var (
		message = err.Error()
		method  = r.Method
		url     = r.URL.String()
	)

	logger := app.serverLogger()
	if tid, ok := ctxstore.From[string](r.Context(), ctxstore.TraceID); ok {
		logger = logger.With(ctxstore.TraceID.String(), tid)
	}

	logger.Error(message, "method", method, "url", url)
}

func (app *application) errorMessage(w http.ResponseWriter, r *http.Request, status int, message string, headers http.Header) {
	err := response.JSONWithHeaders(w, status, response.JSONObject{"error": message}, headers)
	if err != nil {
		app.reportError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.reportError(r, err)

	message := "The server encountered a problem and could not process your request"
	app.errorMessage(w, r, http.StatusInternalServerError, message, nil)
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	message := "The requested resource could not be found"
	app.errorMessage(w, r, http.StatusNotFound, message, nil)
}

func (app *application) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	message := "The " + r.Method + " method is not supported for this resource"
	app.errorMessage(w, r, http.StatusMethodNotAllowed, message, nil)
}

func (app *application) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	app.errorMessage(w, r, http.StatusBadRequest, err.Error(), nil)
}

func (app *application) failedValidation(w http.ResponseWriter, r *http.Request, fieldErrors map[string]string) {
	err := response.JSON(w, http.StatusUnprocessableEntity, response.JSONObject{"fieldErrors": fieldErrors})
	if err != nil {
		app.serverError(w, r, err)
	}
}

// storageFailure maps DAO errors onto HTTP statuses.
func (app *application) storageFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		app.errorMessage(w, r, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, model.ErrInvalidReference):
		app.errorMessage(w, r, http.StatusUnprocessableEntity, "The referenced person does not exist or is still referenced", nil)
	case errors.Is(err, model.ErrExists):
		app.errorMessage(w, r, http.StatusConflict, "The resource already exists", nil)
	default:
		app.serverError(w, r, err)
	}
}
