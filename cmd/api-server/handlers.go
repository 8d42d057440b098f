package main

import (
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/protomem/todoit/internal/database"
	"github.com/protomem/todoit/internal/model"
	"github.com/protomem/todoit/internal/request"
	"github.com/protomem/todoit/internal/response"
)

func (app *application) handleStatus(w http.ResponseWriter, r *http.Request) {
	if err := response.JSON(w, http.StatusOK, response.JSONObject{"status": "OK"}); err != nil {
		app.serverError(w, r, err)
	}
}

// People

type requestPerson struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type responsePerson struct {
	Person model.Person `json:"person"`
}

type responsePeople struct {
	People []model.Person `json:"people"`
}

func (app *application) handleListPeople(w http.ResponseWriter, r *http.Request) {
	dao := database.NewPersonDAO(app.logger, app.db)

	var (
		people []model.Person
		err    error
	)
	if name := optionalStringQueryParams(r, "name"); name != nil {
		people, err = dao.FindByName(r.Context(), *name)
	} else {
		people, err = dao.FindAll(r.Context())
	}
	if err != nil {
		app.storageFailure(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, responsePeople{People: people}); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleAddPerson(w http.ResponseWriter, r *http.Request) {
	var input requestPerson
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	if fe := validateRequestPerson(input); len(fe) > 0 {
		app.failedValidation(w, r, fe)
		return
	}

	person := model.NewPerson(input.FirstName, input.LastName)

	dao := database.NewPersonDAO(app.logger, app.db)
	if _, err := dao.Create(r.Context(), &person); err != nil {
		app.storageFailure(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusCreated, responsePerson{Person: person}); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleGetPerson(w http.ResponseWriter, r *http.Request) {
	personID, err := personIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	dao := database.NewPersonDAO(app.logger, app.db)

	person, ok, err := dao.FindByID(r.Context(), personID)
	if err != nil {
		app.storageFailure(w, r, err)
		return
	}
	if !ok {
		app.notFound(w, r)
		return
	}

	if err := response.JSON(w, http.StatusOK, responsePerson{Person: person}); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleUpdatePerson(w http.ResponseWriter, r *http.Request) {
	personID, err := personIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	var input requestPerson
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	if fe := validateRequestPerson(input); len(fe) > 0 {
		app.failedValidation(w, r, fe)
		return
	}

	person := model.Person{ID: personID, FirstName: input.FirstName, LastName: input.LastName}

	dao := database.NewPersonDAO(app.logger, app.db)
	if _, err := dao.Update(r.Context(), &person); err != nil {
		app.storageFailure(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, responsePerson{Person: person}); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleDeletePerson(w http.ResponseWriter, r *http.Request) {
	personID, err := personIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	dao := database.NewPersonDAO(app.logger, app.db)

	deleted, err := dao.DeleteByID(r.Context(), personID)
	if err != nil {
		app.storageFailure(w, r, err)
		return
	}
	if !deleted {
		app.notFound(w, r)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListPersonTodos returns the person's to-dos with the assignee resolved.
func (app *application) handleListPersonTodos(w http.ResponseWriter, r *http.Request) {
	personID, err := personIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	person, ok, err := database.NewPersonDAO(app.logger, app.db).FindByID(r.Context(), personID)
	if err != nil {
		app.storageFailure(w, r, err)
		return
	}
	if !ok {
		app.notFound(w, r)
		return
	}

	todos, err := database.NewToDoDAO(app.logger, app.db).FindByAssignee(r.Context(), &person)
	if err != nil {
		app.storageFailure(w, r, err)
		return
	}

	for i := range todos {
		todos[i].AssignTo(person)
	}

	if err := response.JSON(w, http.StatusOK, responseTodos{Todos: todos}); err != nil {
		app.serverError(w, r, err)
	}
}

// Todos

type requestTodo struct {
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	Deadline    *civil.Date `json:"deadline"`
	Done        bool        `json:"done"`
	AssigneeID  *model.ID   `json:"assigneeId"`
}

func (input requestTodo) toModel(id model.ID) model.ToDo {
	todo := model.NewToDo(input.Title, input.Description, input.Deadline)
	todo.ID = id
	todo.Done = input.Done
	if input.AssigneeID != nil {
		todo.Assignee = model.RefByID(*input.AssigneeID)
	}
	return todo
}

type responseTodo struct {
	Todo model.ToDo `json:"todo"`
}

type responseTodos struct {
	Todos []model.ToDo `json:"todos"`
}

func (app *application) handleListTodos(w http.ResponseWriter, r *http.Request) {
	unassigned, err := optionalBoolQueryParams(r, "unassigned")
	if err != nil {
		app.badRequest(w, r, err)
		return
	}
	assignee, err := optionalIntQueryParams(r, "assignee")
	if err != nil {
		app.badRequest(w, r, err)
		return
	}
	done, err := optionalBoolQueryParams(r, "done")
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	dao := database.NewToDoDAO(app.logger, app.db)
	ctx := r.Context()

	var todos []model.ToDo
	switch {
	case unassigned != nil && *unassigned:
		todos, err = dao.FindUnassigned(ctx)
	case assignee != nil:
		todos, err = dao.FindByAssigneeID(ctx, *assignee)
	case done != nil:
		todos, err = dao.FindByDoneStatus(ctx, *done)
	default:
		todos, err = dao.FindAll(ctx)
	}
	if err != nil {
		app.storageFailure(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, responseTodos{Todos: todos}); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleAddTodo(w http.ResponseWriter, r *http.Request) {
	var input requestTodo
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	if fe := validateRequestTodo(input); len(fe) > 0 {
		app.failedValidation(w, r, fe)
		return
	}

	todo := input.toModel(0)

	dao := database.NewToDoDAO(app.logger, app.db)
	if _, err := dao.Create(r.Context(), &todo); err != nil {
		app.storageFailure(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusCreated, responseTodo{Todo: todo}); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleGetTodo(w http.ResponseWriter, r *http.Request) {
	todoID, err := todoIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	dao := database.NewToDoDAO(app.logger, app.db)

	todo, ok, err := dao.FindByID(r.Context(), todoID)
	if err != nil {
		app.storageFailure(w, r, err)
		return
	}
	if !ok {
		app.notFound(w, r)
		return
	}

	if err := response.JSON(w, http.StatusOK, responseTodo{Todo: todo}); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	todoID, err := todoIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	var input requestTodo
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	if fe := validateRequestTodo(input); len(fe) > 0 {
		app.failedValidation(w, r, fe)
		return
	}

	todo := input.toModel(todoID)

	dao := database.NewToDoDAO(app.logger, app.db)
	if _, err := dao.Update(r.Context(), &todo); err != nil {
		app.storageFailure(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, responseTodo{Todo: todo}); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	todoID, err := todoIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	dao := database.NewToDoDAO(app.logger, app.db)

	deleted, err := dao.DeleteByID(r.Context(), todoID)
	if err != nil {
		app.storageFailure(w, r, err)
		return
	}
	if !deleted {
		app.notFound(w, r)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
