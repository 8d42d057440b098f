package database

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/protomem/todoit/internal/model"
)

const _personTable = "person"

var _personColumns = []string{"person_id", "first_name", "last_name"}

type personRow struct {
	ID        model.ID       `db:"person_id"`
	FirstName sql.NullString `db:"first_name"`
	LastName  sql.NullString `db:"last_name"`
}

func (row personRow) toModel() model.Person {
	return model.Person{
		ID:        row.ID,
		FirstName: row.FirstName.String,
		LastName:  row.LastName.String,
	}
}

type PersonDAO struct {
	Logger *slog.Logger
	*DB
}

func NewPersonDAO(logger *slog.Logger, db *DB) *PersonDAO {
	return &PersonDAO{
		Logger: logger.With("dao", "person"),
		DB:     db,
	}
}

func (dao *PersonDAO) Create(ctx context.Context, person *model.Person) (*model.Person, error) {
	const op = "create person"
	logger := queryLogger(ctx, dao.Logger, "create")

	builder := dao.Builder.
		Insert(_personTable).
		Columns("first_name", "last_name").
		Values(person.FirstName, person.LastName)
	if dao.Dialect.Returning {
		builder = builder.Suffix("RETURNING person_id")
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

	person.ID = id

	logger.Debug("success query execute", "insertId", id)

	return person, nil
}

func (dao *PersonDAO) FindAll(ctx context.Context) ([]model.Person, error) {
	return dao.find(ctx, "find all people", "findAll", nil)
}

// FindByName matches name as a substring of either the first or the last name,
// ignoring case. A blank name matches everybody.
func (dao *PersonDAO) FindByName(ctx context.Context, name string) ([]model.Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return dao.FindAll(ctx)
	}

	pattern := "%" + escapeLike(name) + "%"
	where := squirrel.Or{
		dao.Dialect.CaseInsensitiveLike("first_name", pattern),
		dao.Dialect.CaseInsensitiveLike("last_name", pattern),
	}

	return dao.find(ctx, "find people by name", "findByName", where)
}

func (dao *PersonDAO) find(ctx context.Context, op, name string, where squirrel.Sqlizer) ([]model.Person, error) {
	logger := queryLogger(ctx, dao.Logger, name)

	builder := dao.Builder.
		Select(_personColumns...).
		From(_personTable).
		OrderBy("person_id ASC")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return []model.Person{}, storageError(op, err)
	}

	logger.Debug("build query", "sql", query, "args", args)

	conn, err := dao.Acquire(ctx)
	if err != nil {
		logger.Warn("failed to acquire connection", "error", err)
		return []model.Person{}, storageError(op, err)
	}
	defer closeConn(logger, conn)

	var rows []personRow
	if err := conn.SelectContext(ctx, &rows, query, args...); err != nil {
		logger.Warn("failed query execute", "error", err)
		return []model.Person{}, storageError(op, err)
	}

	people := make([]model.Person, 0, len(rows))
	for _, row := range rows {
		people = append(people, row.toModel())
	}

	logger.Debug("success query execute", "countPeople", len(people))

	return people, nil
}

func (dao *PersonDAO) FindByID(ctx context.Context, id model.ID) (model.Person, bool, error) {
	const op = "find person by id"
	logger := queryLogger(ctx, dao.Logger, "findById")

	query, args, err := dao.Builder.
		Select(_personColumns...).
		From(_personTable).
		Where(squirrel.Eq{"person_id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Person{}, false, storageError(op, err)
	}

	logger.Debug("build query", "sql", query, "args", args)

	conn, err := dao.Acquire(ctx)
	if err != nil {
		logger.Warn("failed to acquire connection", "error", err)
		return model.Person{}, false, storageError(op, err)
	}
	defer closeConn(logger, conn)

	var row personRow
	if err := conn.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if IsNoRows(err) {
			logger.Debug("success query execute", "found", false)
			return model.Person{}, false, nil
		}

		logger.Warn("failed query execute", "error", err)

		return model.Person{}, false, storageError(op, err)
	}

	person := row.toModel()

	logger.Debug("success query execute", "person", person)

	return person, true, nil
}

func (dao *PersonDAO) Update(ctx context.Context, person *model.Person) (*model.Person, error) {
	const op = "update person"
	logger := queryLogger(ctx, dao.Logger, "update")

	query, args, err := dao.Builder.
		Update(_personTable).
		Set("first_name", person.FirstName).
		Set("last_name", person.LastName).
		Where(squirrel.Eq{"person_id": person.ID}).
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
		logger.Debug("no rows updated", "updateId", person.ID)
		return nil, model.NewError("person", model.ErrNotFound)
	}

	logger.Debug("success query execute", "updateId", person.ID)

	return person, nil
}

// DeleteByID reports whether a row was removed. What happens to to-dos
// assigned to the person is up to the schema's foreign key.
func (dao *PersonDAO) DeleteByID(ctx context.Context, id model.ID) (bool, error) {
	const op = "delete person"
	logger := queryLogger(ctx, dao.Logger, "delete")

	query, args, err := dao.Builder.
		Delete(_personTable).
		Where(squirrel.Eq{"person_id": id}).
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

var _likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return _likeEscaper.Replace(s)
}
