package main

import "strings"

// Validation rules

type fieldErrors map[string]string

func (fe fieldErrors) check(ok bool, key, message string) {
	if ok {
		return
	}
	if _, exists := fe[key]; !exists {
		fe[key] = message
	}
}

func validateRequestTodo(request requestTodo) fieldErrors {
	fe := fieldErrors{}
	fe.check(notBlank(request.Title), "title", "cannot be blank")
	if request.Deadline != nil {
		fe.check(request.Deadline.IsValid(), "deadline", "must be a valid date")
	}
	if request.AssigneeID != nil {
		fe.check(*request.AssigneeID > 0, "assigneeId", "must be a positive number")
	}
	return fe
}

func validateRequestPerson(request requestPerson) fieldErrors {
	fe := fieldErrors{}
	fe.check(notBlank(request.FirstName) || notBlank(request.LastName), "name", "first or last name is required")
	return fe
}

func notBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}
