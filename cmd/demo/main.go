package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/protomem/todoit/internal/ctxstore"
	"github.com/protomem/todoit/internal/database"
	"github.com/protomem/todoit/internal/env"
	"github.com/protomem/todoit/internal/model"
)

var (
	_cfgFile  = flag.String("cfg", "", "path to config file")
	_firstID  = flag.Int("first", 17, "id of the first assignee")
	_secondID = flag.Int("second", 18, "id of the second assignee")
)

func main() {
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := run(logger); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	if *_cfgFile != "" {
		if err := env.Load(*_cfgFile); err != nil {
			return err
		}
	}

	cfg := database.Config{
		URL:      env.GetString("DB_URL", database.DefaultURL),
		User:     env.GetString("DB_USER", database.DefaultUser),
		Password: env.GetString("DB_PASSWORD", database.DefaultPassword),
	}

	ctx := ctxstore.With(context.Background(), ctxstore.TraceID, uuid.NewString())

	db, err := database.New(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	people := database.NewPersonDAO(logger, db)
	todos := database.NewToDoDAO(logger, db)

	first, err := mustFindPerson(ctx, people, *_firstID)
	if err != nil {
		return err
	}
	second, err := mustFindPerson(ctx, people, *_secondID)
	if err != nil {
		return err
	}

	today := civil.DateOf(time.Now())
	cabinetsDeadline := civil.DateOf(time.Now().AddDate(0, 2, 0))
	dishwasherDeadline := civil.DateOf(time.Now().AddDate(0, 1, 0))

	cabinets := model.NewToDo("Hand cabinets", ptr("Continue kitchen renovation"), &cabinetsDeadline)
	if _, err := todos.Create(ctx, &cabinets); err != nil {
		return err
	}
	dishwasher := model.NewToDo("Install dishwasher", ptr("Buy a Siemens dishwasher and install it"), &dishwasherDeadline)
	if _, err := todos.Create(ctx, &dishwasher); err != nil {
		return err
	}

	fmt.Printf("Created on %s: %s\n", today, describe(cabinets))
	fmt.Printf("Created on %s: %s\n", today, describe(dishwasher))

	cabinets.AssignTo(first)
	if _, err := todos.Update(ctx, &cabinets); err != nil {
		return err
	}
	dishwasher.AssignTo(second)
	if _, err := todos.Update(ctx, &dishwasher); err != nil {
		return err
	}

	fmt.Println("After update:")
	for _, id := range []model.ID{cabinets.ID, dishwasher.ID} {
		if err := printToDo(ctx, todos, id); err != nil {
			return err
		}
	}

	cabinets.Done = true
	if _, err := todos.Update(ctx, &cabinets); err != nil {
		return err
	}
	fmt.Print("Updated: ")
	if err := printToDo(ctx, todos, cabinets.ID); err != nil {
		return err
	}

	assigned, err := todos.FindByAssignee(ctx, &first)
	if err != nil {
		return err
	}
	fmt.Printf("Todos for %s:\n", first.FirstName)
	for _, todo := range assigned {
		fmt.Println("  " + describe(todo))
	}

	unassigned, err := todos.FindUnassigned(ctx)
	if err != nil {
		return err
	}
	fmt.Println("Unassigned todos:")
	for _, todo := range unassigned {
		fmt.Println("  " + describe(todo))
	}

	return nil
}

// mustFindPerson treats an absent person as fatal for the demo.
func mustFindPerson(ctx context.Context, dao *database.PersonDAO, id model.ID) (model.Person, error) {
	person, ok, err := dao.FindByID(ctx, id)
	if err != nil {
		return model.Person{}, err
	}
	if !ok {
		return model.Person{}, fmt.Errorf("person %d: %w", id, model.ErrNotFound)
	}
	return person, nil
}

func printToDo(ctx context.Context, dao *database.ToDoDAO, id model.ID) error {
	todo, ok, err := dao.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return model.NewError("todo", model.ErrNotFound)
	}
	fmt.Println(describe(todo))
	return nil
}

func describe(todo model.ToDo) string {
	deadline := "none"
	if todo.Deadline != nil {
		deadline = todo.Deadline.String()
	}
	assignee := "none"
	if todo.Assignee.Assigned() {
		assignee = fmt.Sprintf("#%d", todo.Assignee.ID())
	}
	return fmt.Sprintf("ToDo{id=%d, title=%q, deadline=%s, done=%t, assignee=%s}",
		todo.ID, todo.Title, deadline, todo.Done, assignee)
}

func ptr[T any](v T) *T {
	return &v
}
