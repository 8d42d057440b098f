package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (app *application) routes() http.Handler {
	mux := chi.NewRouter()

	mux.NotFound(app.notFound)
	mux.MethodNotAllowed(app.methodNotAllowed)

	mux.Use(app.traceID)
	mux.Use(app.logAccess)
	mux.Use(app.recoverPanic)

	mux.Use(app.CORS)

	mux.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", app.handleStatus)

		r.Get("/people", app.handleListPeople)
		r.Post("/people", app.handleAddPerson)
		r.Get("/people/{personId}", app.handleGetPerson)
		r.Put("/people/{personId}", app.handleUpdatePerson)
		r.Delete("/people/{personId}", app.handleDeletePerson)
		r.Get("/people/{personId}/todos", app.handleListPersonTodos)

		r.Get("/todos", app.handleListTodos)
		r.Post("/todos", app.handleAddTodo)
		r.Get("/todos/{todoId}", app.handleGetTodo)
		r.Put("/todos/{todoId}", app.handleUpdateTodo)
		r.Delete("/todos/{todoId}", app.handleDeleteTodo)
	})

	app.logger.Debug("routes configured", "routes", chiRoutesToStrings(mux.Routes()))

	return mux
}

func chiRoutesToStrings(routes []chi.Route) []string {
	parsedRoutes := make([]string, 0, len(routes))
	for _, route := range routes {
		parsedRoutes = append(parsedRoutes, route.Pattern)
		if route.SubRoutes != nil {
			parsedRoutes = append(parsedRoutes, chiRoutesToStrings(route.SubRoutes.Routes())...)
		}
	}
	return parsedRoutes
}
