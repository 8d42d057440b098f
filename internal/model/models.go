package model

import (
	"encoding/json"

	"cloud.google.com/go/civil"
)

type ID = int

type Person struct {
	ID        ID     `json:"personId" db:"person_id"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`
}

func NewPerson(firstName, lastName string) Person {
	return Person{FirstName: firstName, LastName: lastName}
}

// Equal compares people by identity only.
func (p Person) Equal(other Person) bool {
	return p.ID == other.ID
}

// PersonRef is a weak reference from a to-do to its assignee.
//
// The zero value is "no assignee". A reference built with RefByID is unresolved:
// only the id is known, which is what every to-do read from storage carries.
// A reference built with RefTo is resolved and also holds the full person.
type PersonRef struct {
	id     ID
	person *Person
}

func RefByID(id ID) PersonRef {
	return PersonRef{id: id}
}

func RefTo(person Person) PersonRef {
	return PersonRef{id: person.ID, person: &person}
}

func (r PersonRef) ID() ID {
	return r.id
}

// Assigned reports whether the reference points at a persisted person.
// Non-positive ids count as no assignee.
func (r PersonRef) Assigned() bool {
	return r.id > 0
}

// Resolved returns the full person when the reference carries one.
func (r PersonRef) Resolved() (Person, bool) {
	if r.person == nil {
		return Person{}, false
	}
	return *r.person, true
}

func (r PersonRef) MarshalJSON() ([]byte, error) {
	if !r.Assigned() {
		return []byte("null"), nil
	}
	if p, ok := r.Resolved(); ok {
		return json.Marshal(p)
	}
	return json.Marshal(struct {
		ID ID `json:"personId"`
	}{ID: r.id})
}

type ToDo struct {
	ID          ID          `json:"toDoId"`
	Title       string      `json:"title"`
	Description *string     `json:"description,omitempty"`
	Deadline    *civil.Date `json:"deadline,omitempty"`
	Done        bool        `json:"done"`
	Assignee    PersonRef   `json:"assignee"`
}

func NewToDo(title string, description *string, deadline *civil.Date) ToDo {
	return ToDo{
		Title:       title,
		Description: description,
		Deadline:    deadline,
	}
}

func (t *ToDo) AssignTo(person Person) {
	t.Assignee = RefTo(person)
}

func (t *ToDo) Unassign() {
	t.Assignee = PersonRef{}
}

// AssigneeID returns the foreign key value to persist, or nil for NULL.
func (t ToDo) AssigneeID() *ID {
	if !t.Assignee.Assigned() {
		return nil
	}
	id := t.Assignee.ID()
	return &id
}
