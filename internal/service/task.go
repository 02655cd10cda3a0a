package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/taskboard/taskboard-go/internal/model"
	"github.com/taskboard/taskboard-go/internal/repository"
)

const minTitleLength = 4

// TaskStore persists tasks scoped by their owner.
type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	Get(ctx context.Context, userID, id string) (*model.Task, error)
	List(ctx context.Context, userID string, filter model.TaskFilter) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, userID, id string) error
}

// TaskService handles task business logic. Every operation is scoped by the calling user.
type TaskService struct {
	repo TaskStore
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo TaskStore) *TaskService {
	return &TaskService{repo: repo}
}

// Create creates a new task owned by userID.
func (s *TaskService) Create(ctx context.Context, userID string, req model.CreateTaskRequest) (model.Task, error) {
	if err := validateTitle(req.Title); err != nil {
		return model.Task{}, err
	}
	if req.Description == "" {
		return model.Task{}, validationError("description should not be empty")
	}
	if !req.Priority.Valid() {
		return model.Task{}, validationError("priority must be one of LOW, MEDIUM, HIGH")
	}
	if !req.Status.Valid() {
		return model.Task{}, validationError("status must be one of TODO, IN_PROGRESS, DONE")
	}

	task := model.Task{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		UserID:      userID,
	}

	if err := s.repo.Create(ctx, &task); err != nil {
		// A valid token can outlive its user row.
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.Task{}, ErrUserNotFound
		}
		return model.Task{}, internalError(err)
	}

	return task, nil
}

// List returns the tasks of userID matching filter.
func (s *TaskService) List(ctx context.Context, userID string, filter model.TaskFilter) ([]model.Task, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, validationError("status must be one of TODO, IN_PROGRESS, DONE")
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		return nil, validationError("priority must be one of LOW, MEDIUM, HIGH")
	}

	tasks, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, internalError(err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	return tasks, nil
}

// Get returns a task by id. Tasks owned by other users are reported as not found.
func (s *TaskService) Get(ctx context.Context, userID, id string) (model.Task, error) {
	task, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return model.Task{}, err
	}
	return *task, nil
}

// Update applies the provided fields to a task owned by userID.
func (s *TaskService) Update(ctx context.Context, userID, id string, req model.UpdateTaskRequest) (model.Task, error) {
	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return model.Task{}, err
		}
	}
	if req.Priority != nil && !req.Priority.Valid() {
		return model.Task{}, validationError("priority must be one of LOW, MEDIUM, HIGH")
	}
	if req.Status != nil && !req.Status.Valid() {
		return model.Task{}, validationError("status must be one of TODO, IN_PROGRESS, DONE")
	}

	task, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return model.Task{}, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Status != nil {
		task.Status = *req.Status
	}

	if err := s.repo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return model.Task{}, ErrTaskNotFound
		}
		return model.Task{}, internalError(err)
	}

	return *task, nil
}

// Delete removes a task owned by userID.
func (s *TaskService) Delete(ctx context.Context, userID, id string) (model.MessageResponse, error) {
	if uuid.Validate(id) != nil {
		return model.MessageResponse{}, ErrTaskNotFound
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return model.MessageResponse{}, ErrTaskNotFound
		}
		return model.MessageResponse{}, internalError(err)
	}

	return model.MessageResponse{Message: "Task deleted successfully"}, nil
}

func (s *TaskService) getOwned(ctx context.Context, userID, id string) (*model.Task, error) {
	// Ids are always UUIDs; anything else cannot exist.
	if uuid.Validate(id) != nil {
		return nil, ErrTaskNotFound
	}

	task, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, internalError(err)
	}

	return task, nil
}

func validateTitle(title string) error {
	if title == "" {
		return validationError("title should not be empty")
	}
	if utf8.RuneCountInString(title) < minTitleLength {
		return validationError("title must be longer than or equal to 4 characters")
	}
	return nil
}
