package database

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/protomem/todoit/internal/model"
)

const _todoTable = "todo_item"

var _todoColumns = []string{"todo_id", "title", "description", "deadline", "done", "assignee_id"}

type todoRow struct {
	ID          model.ID       `db:"todo_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Deadline    NullDate       `db:"deadline"`
	Done        bool           `db:"done"`
	AssigneeID  sql.NullInt64  `db:"assignee_id"`
}

// toModel never loads the assignee; a non-NULL key becomes an id-only reference.
func (row todoRow) toModel() model.ToDo {
	todo := model.ToDo{
		ID:       row.ID,
		Title:    row.Title,
		Deadline: row.Deadline.Ptr(),
		Done:     row.Done,
	}
	if row.Description.Valid {
		description := row.Description.String
		todo.Description = &description
	}
	if row.AssigneeID.Valid {
		todo.Assignee = model.RefByID(model.ID(row.AssigneeID.Int64))
	}
	return todo
}

type ToDoDAO struct {
	Logger *slog.Logger
	*DB
}

func NewToDoDAO(logger *slog.Logger, db *DB) *ToDoDAO {
	return &ToDoDAO{
		Logger: logger.With("dao", "todo"),
		DB:     db,
	}
}

// Create inserts todo and stores the generated id back into it.
func (dao *ToDoDAO) Create(ctx context.Context, todo *model.ToDo) (*model.ToDo, error) {
	const op = "create todo"
	logger := queryLogger(ctx, dao.Logger, "create")

	builder := dao.Builder.
		Insert(_todoTable).
		Columns("title", "description", "deadline", "done", "assignee_id").
		Values(todo.Title, todo.Description, NewNullDate(todo.Deadline), todo.Done, todo.AssigneeID())
	if dao.Dialect.Returning {
		builder = builder.Suffix("RETURNING todo_id")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, storageError(op, err)
	}

	logger.Debug("build query", "sql", query, "args", args)

	conn, err := dao.Acquire(ctx)
	if err != nil {
		logger.Warn("failed to acquire connection", "error", err)
		return nil, storageError(op, err)
	}
	defer closeConn(logger, conn)

	id, err := insertReturningID(ctx, conn, dao.Dialect, query, args)
	if err != nil {
		logger.Warn("failed query execute", "error", err)
		return nil, storageError(op, err)
	}

	todo.ID = id

	logger.Debug("success query execute", "insertId", id)

	return todo, nil
}

func (dao *ToDoDAO) FindAll(ctx context.Context) ([]model.ToDo, error) {
	return dao.find(ctx, "find all todos", "findAll", nil)
}

func (dao *ToDoDAO) FindByDoneStatus(ctx context.Context, done bool) ([]model.ToDo, error) {
	return dao.find(ctx, "find todos by done status", "findByDoneStatus", squirrel.Eq{"done": done})
}

func (dao *ToDoDAO) FindByAssigneeID(ctx context.Context, personID model.ID) ([]model.ToDo, error) {
	return dao.find(ctx, "find todos by assignee", "findByAssignee", squirrel.Eq{"assignee_id": personID})
}

// FindByAssignee returns nothing for a nil person without touching storage.
func (dao *ToDoDAO) FindByAssignee(ctx context.Context, person *model.Person) ([]model.ToDo, error) {
	if person == nil {
		return []model.ToDo{}, nil
	}
	return dao.FindByAssigneeID(ctx, person.ID)
}

func (dao *ToDoDAO) FindUnassigned(ctx context.Context) ([]model.ToDo, error) {
	// Eq with nil renders IS NULL; "= NULL" would never match
	return dao.find(ctx, "find unassigned todos", "findUnassigned", squirrel.Eq{"assignee_id": nil})
}

func (dao *ToDoDAO) find(ctx context.Context, op, name string, where squirrel.Sqlizer) ([]model.ToDo, error) {
	logger := queryLogger(ctx, dao.Logger, name)

	builder := dao.Builder.
		Select(_todoColumns...).
		From(_todoTable).
		OrderBy("todo_id ASC")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return []model.ToDo{}, storageError(op, err)
	}

	logger.Debug("build query", "sql", query, "args", args)

	conn, err := dao.Acquire(ctx)
	if err != nil {
		logger.Warn("failed to acquire connection", "error", err)
		return []model.ToDo{}, storageError(op, err)
	}
	defer closeConn(logger, conn)

	var rows []todoRow
	if err := conn.SelectContext(ctx, &rows, query, args...); err != nil {
		logger.Warn("failed query execute", "error", err)
		return []model.ToDo{}, storageError(op, err)
	}

	todos := make([]model.ToDo, 0, len(rows))
	for _, row := range rows {
		todos = append(todos, row.toModel())
	}

	logger.Debug("success query execute", "countTodos", len(todos))

	return todos, nil
}

// FindByID reports false when no row has the given id.
func (dao *ToDoDAO) FindByID(ctx context.Context, id model.ID) (model.ToDo, bool, error) {
	const op = "find todo by id"
	logger := queryLogger(ctx, dao.Logger, "findById")

	query, args, err := dao.Builder.
		Select(_todoColumns...).
		From(_todoTable).
		Where(squirrel.Eq{"todo_id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.ToDo{}, false, storageError(op, err)
	}

	logger.Debug("build query", "sql", query, "args", args)

	conn, err := dao.Acquire(ctx)
	if err != nil {
		logger.Warn("failed to acquire connection", "error", err)
		return model.ToDo{}, false, storageError(op, err)
	}
	defer closeConn(logger, conn)

	var row todoRow
	if err := conn.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if IsNoRows(err) {
			logger.Debug("success query execute", "found", false)
			return model.ToDo{}, false, nil
		}

		logger.Warn("failed query execute", "error", err)

		return model.ToDo{}, false, storageError(op, err)
	}

	logger.Debug("success query execute", "found", true)

	return row.toModel(), true, nil
}

// Update overwrites every mutable column of the row with todo.ID.
// It fails with model.ErrNotFound when no such row exists.
func (dao *ToDoDAO) Update(ctx context.Context, todo *model.ToDo) (*model.ToDo, error) {
	const op = "update todo"
	logger := queryLogger(ctx, dao.Logger, "update")

	query, args, err := dao.Builder.
		Update(_todoTable).
		Set("title", todo.Title).
		Set("description", todo.Description).
		Set("deadline", NewNullDate(todo.Deadline)).
		Set("done", todo.Done).
		Set("assignee_id", todo.AssigneeID()).
		Where(squirrel.Eq{"todo_id": todo.ID}).
		ToSql()
	if err != nil {
		return nil, storageError(op, err)
	}

	logger.Debug("build query", "sql", query, "args", args)

	conn, err := dao.Acquire(ctx)
	if err != nil {
		logger.Warn("failed to acquire connection", "error", err)
		return nil, storageError(op, err)
	}
	defer closeConn(logger, conn)

	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Warn("failed query execute", "error", err)
		return nil, storageError(op, err)
	}

	n, err := rowsAffected(res)
	if err != nil {
		return nil, storageError(op, err)
	}
	if n == 0 {
		logger.Debug("no rows updated", "updateId", todo.ID)
		return nil, model.NewError("todo", model.ErrNotFound)
	}

	logger.Debug("success query execute", "updateId", todo.ID)

	return todo, nil
}

// DeleteByID reports whether a row was removed.
func (dao *ToDoDAO) DeleteByID(ctx context.Context, id model.ID) (bool, error) {
	const op = "delete todo"
	logger := queryLogger(ctx, dao.Logger, "delete")

	query, args, err := dao.Builder.
		Delete(_todoTable).
		Where(squirrel.Eq{"todo_id": id}).
		ToSql()
	if err != nil {
		return false, storageError(op, err)
	}

	logger.Debug("build query", "sql", query, "args", args)

	conn, err := dao.Acquire(ctx)
	if err != nil {
		logger.Warn("failed to acquire connection", "error", err)
		return false, storageError(op, err)
	}
	defer closeConn(logger, conn)

	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Warn("failed query execute", "error", err)
		return false, storageError(op, err)
	}

	n, err := rowsAffected(res)
	if err != nil {
		return false, storageError(op, err)
	}

	logger.Debug("success query execute", "deleteId", id, "deleted", n > 0)

	return n > 0, nil
}
