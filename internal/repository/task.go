package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/taskboard/taskboard-go/internal/model"
)

var ErrTaskNotFound = errors.New("task not found")

const taskColumns = `id, title, description, priority, status, user_id, created_at, updated_at`

// TaskRepository handles task persistence operations. Every read and write is
// scoped by the owning user.
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a new task and sets the generated ID and timestamps on the task struct.
// It returns ErrUserNotFound when the owner does not exist.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	query := r.db.dialect.Rebind(`INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)

	id := uuid.NewString()
	ts := now()

	_, err := r.db.ExecContext(ctx, query,
		id,
		task.Title,
		task.Description,
		string(task.Priority),
		string(task.Status),
		task.UserID,
		ts,
		ts,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrUserNotFound
		}
		return err
	}

	task.ID = id
	task.CreatedAt = ts
	task.UpdatedAt = ts
	return nil
}

// Get retrieves a task by ID if it belongs to userID.
func (r *TaskRepository) Get(ctx context.Context, userID, id string) (*model.Task, error) {
	query := r.db.dialect.Rebind(`SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND user_id = ?`)

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

// List retrieves the tasks of userID matching filter, oldest first.
func (r *TaskRepository) List(ctx context.Context, userID string, filter model.TaskFilter) ([]model.Task, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ?`)
	args := []any{userID}

	if filter.Query != "" {
		b.WriteString(` AND (` + r.db.dialect.likeFold("title") + ` OR ` + r.db.dialect.likeFold("description") + `)`)
		pattern := "%" + escapeLike(strings.ToLower(filter.Query)) + "%"
		args = append(args, pattern, pattern)
	}
	if filter.Status != "" {
		b.WriteString(` AND status = ?`)
		args = append(args, string(filter.Status))
	}
	if filter.Priority != "" {
		b.WriteString(` AND priority = ?`)
		args = append(args, string(filter.Priority))
	}
	b.WriteString(` ORDER BY created_at ASC, id ASC`)

	rows, err := r.db.QueryContext(ctx, r.db.dialect.Rebind(b.String()), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	return tasks, rows.Err()
}

// Update writes the mutable fields of task and refreshes its UpdatedAt.
// The write only applies when the task still belongs to task.UserID.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	query := r.db.dialect.Rebind(`UPDATE tasks SET title = ?, description = ?, priority = ?, status = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`)

	ts := now()

	result, err := r.db.ExecContext(ctx, query,
		task.Title,
		task.Description,
		string(task.Priority),
		string(task.Status),
		ts,
		task.ID,
		task.UserID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrTaskNotFound
	}

	task.UpdatedAt = ts
	return nil
}

// Delete removes a task owned by userID.
func (r *TaskRepository) Delete(ctx context.Context, userID, id string) error {
	query := r.db.dialect.Rebind(`DELETE FROM tasks WHERE id = ? AND user_id = ?`)

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*model.Task, error) {
	var t model.Task
	var priority, status string
	if err := row.Scan(
		&t.ID, &t.Title, &t.Description, &priority, &status,
		&t.UserID, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	t.Priority = model.Priority(priority)
	t.Status = model.Status(status)
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return &t, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// escapeLike makes s match literally inside a LIKE pattern using '!' as the escape character.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
