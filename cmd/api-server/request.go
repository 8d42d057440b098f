package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/protomem/todoit/internal/model"
)

func personIDFromRequest(r *http.Request) (model.ID, error) {
	return idURLParam(r, "personId")
}

func todoIDFromRequest(r *http.Request) (model.ID, error) {
	return idURLParam(r, "todoId")
}

func idURLParam(r *http.Request, key string) (model.ID, error) {
	id, err := strconv.Atoi(chi.URLParam(r, key))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return model.ID(id), nil
}

func optionalStringQueryParams(r *http.Request, key string) *string {
	ref := new(string)
	val, ok := r.URL.Query().Get(key), r.URL.Query().Has(key)
	if !ok {
		return nil
	}
	*ref = val
	return ref
}

func optionalIntQueryParams(r *http.Request, key string) (*int, error) {
	val, ok := r.URL.Query().Get(key), r.URL.Query().Has(key)
	if !ok {
		return nil, nil
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return nil, fmt.Errorf("query parameter %q must be an integer", key)
	}
	return &intVal, nil
}

func optionalBoolQueryParams(r *http.Request, key string) (*bool, error) {
	val, ok := r.URL.Query().Get(key), r.URL.Query().Has(key)
	if !ok {
		return nil, nil
	}
	boolVal, err := strconv.ParseBool(val)
	if err != nil {
		return nil, fmt.Errorf("query parameter %q must be a boolean", key)
	}
	return &boolVal, nil
}
