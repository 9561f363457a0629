package repo

import (
	"context"
	"database/sql"

	"github.com/mwalcott/todo-api/internal/models"
)

// ==========================
// TodoRepo
// ==========================
type TodoRepo struct {
	DB *sql.DB
}

func NewTodoRepo(db *sql.DB) *TodoRepo {
	return &TodoRepo{DB: db}
}

const todoColumns = `id, title, body, status, created_at, owner_id`

func scanTodo(row *sql.Row) (*models.Todo, error) {
	todo := &models.Todo{}
	err := row.Scan(&todo.ID, &todo.Title, &todo.Body, &todo.Status, &todo.CreatedAt, &todo.OwnerID)
	if err != nil {
		return nil, err
	}
	return todo, nil
}

// ==========================
// Create Todo
// ==========================
func (r *TodoRepo) Create(ctx context.Context, title, body string, ownerID int) (*models.Todo, error) {
	query := `
		INSERT INTO todos (title, body, owner_id)
		VALUES ($1, $2, $3)
		RETURNING ` + todoColumns

	return scanTodo(r.DB.QueryRowContext(ctx, query, title, body, ownerID))
}

// ==========================
// Get By ID
// ==========================
func (r *TodoRepo) GetByID(ctx context.Context, id int) (*models.Todo, error) {
	query := `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE id = $1
	`

	return scanTodo(r.DB.QueryRowContext(ctx, query, id))
}

// ==========================
// List By Owner
// ==========================
func (r *TodoRepo) ListByOwner(ctx context.Context, ownerID int) ([]models.Todo, error) {
	query := `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE owner_id = $1
		ORDER BY id
	`

	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []models.Todo
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Body, &t.Status, &t.CreatedAt, &t.OwnerID); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}

	return todos, rows.Err()
}

// ==========================
// Update Todo (partial)
// ==========================
// Update changes only the fields whose pointers are non-nil; the rest
// keep their stored values. Returns sql.ErrNoRows when id is unknown.
func (r *TodoRepo) Update(ctx context.Context, id int, title, body, status *string) (*models.Todo, error) {
	query := `
		UPDATE todos
		SET title = COALESCE($2, title),
		    body = COALESCE($3, body),
		    status = COALESCE($4, status)
		WHERE id = $1
		RETURNING ` + todoColumns

	return scanTodo(r.DB.QueryRowContext(ctx, query, id, title, body, status))
}

// ==========================
// Delete Todo
// ==========================
// Delete removes the todo and returns the deleted row.
// Returns sql.ErrNoRows when id is unknown.
func (r *TodoRepo) Delete(ctx context.Context, id int) (*models.Todo, error) {
	query := `
		DELETE FROM todos
		WHERE id = $1
		RETURNING ` + todoColumns

	return scanTodo(r.DB.QueryRowContext(ctx, query, id))
}

// ==========================
// Count By Status
// ==========================
func (r *TodoRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT status, COUNT(*) FROM todos GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
