package model

import (
	"encoding/json"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonEqualByID(t *testing.T) {
	a := Person{ID: 17, FirstName: "Roman", LastName: "Vanoyan"}
	b := Person{ID: 17}
	c := Person{ID: 18, FirstName: "Roman", LastName: "Vanoyan"}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestNewToDo(t *testing.T) {
	deadline := civil.Date{Year: 2026, Month: time.December, Day: 17}
	todo := NewToDo("Hand cabinets", nil, &deadline)

	assert.Zero(t, todo.ID)
	assert.False(t, todo.Done)
	assert.False(t, todo.Assignee.Assigned())
	assert.Nil(t, todo.AssigneeID())
	assert.Equal(t, &deadline, todo.Deadline)
}

func TestPersonRef(t *testing.T) {
	t.Run("zero value is absent", func(t *testing.T) {
		var ref PersonRef
		assert.False(t, ref.Assigned())
		_, ok := ref.Resolved()
		assert.False(t, ok)
	})

	t.Run("by id is unresolved", func(t *testing.T) {
		ref := RefByID(17)
		assert.True(t, ref.Assigned())
		assert.Equal(t, 17, ref.ID())
		_, ok := ref.Resolved()
		assert.False(t, ok)
	})

	t.Run("to person is resolved", func(t *testing.T) {
		person := Person{ID: 18, FirstName: "Artur"}
		ref := RefTo(person)

		got, ok := ref.Resolved()
		require.True(t, ok)
		assert.Equal(t, person, got)

		person.FirstName = "changed"
		got, _ = ref.Resolved()
		assert.Equal(t, "Artur", got.FirstName)
	})

	t.Run("non-positive ids are not assigned", func(t *testing.T) {
		assert.False(t, RefByID(0).Assigned())
		assert.False(t, RefByID(-5).Assigned())
		assert.False(t, RefTo(NewPerson("New", "Person")).Assigned())
	})
}

func TestToDoAssignment(t *testing.T) {
	todo := NewToDo("Install dishwasher", nil, nil)

	todo.AssignTo(Person{ID: 18})
	require.NotNil(t, todo.AssigneeID())
	assert.Equal(t, 18, *todo.AssigneeID())

	todo.Unassign()
	assert.Nil(t, todo.AssigneeID())

	todo.AssignTo(Person{ID: -1})
	assert.Nil(t, todo.AssigneeID())
}

func TestToDoJSON(t *testing.T) {
	deadline := civil.Date{Year: 2026, Month: time.December, Day: 17}

	tests := []struct {
		name string
		todo ToDo
		want string
	}{
		{
			name: "unassigned",
			todo: ToDo{ID: 1, Title: "Hand cabinets", Deadline: &deadline},
			want: `{"toDoId":1,"title":"Hand cabinets","deadline":"2026-12-17","done":false,"assignee":null}`,
		},
		{
			name: "id only",
			todo: ToDo{ID: 2, Title: "Install dishwasher", Assignee: RefByID(18)},
			want: `{"toDoId":2,"title":"Install dishwasher","done":false,"assignee":{"personId":18}}`,
		},
		{
			name: "resolved",
			todo: ToDo{ID: 3, Title: "Paint", Done: true, Assignee: RefTo(Person{ID: 17, FirstName: "Roman", LastName: "Vanoyan"})},
			want: `{"toDoId":3,"title":"Paint","done":true,"assignee":{"personId":17,"firstName":"Roman","lastName":"Vanoyan"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.todo)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}
