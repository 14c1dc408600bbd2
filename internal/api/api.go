package api

import (
	"context"

	"todolist/internal/domain"
	"todolist/internal/repository/sqlite"
	"todolist/internal/validation"
)

// API defines the task store contract shared by both the browser surface
// and the JSON surface. Due dates arrive as strings in the fixed
// minute-precision layout and are validated here, so neither surface
// carries its own parsing rules.
type API interface {
	CreateTask(ctx context.Context, name string, doBy string) (*domain.Task, error)
	GetTask(ctx context.Context, name string) (*domain.Task, error)
	ListTasks(ctx context.Context, order domain.Order) ([]*domain.Task, error)
	SearchTasksByName(ctx context.Context, name string) ([]*domain.Task, error)
	UpdateDoBy(ctx context.Context, name string, doBy string) (*domain.Task, error)
	RenameTask(ctx context.Context, name string, newName string) (*domain.Task, error)
	UpdateTask(ctx context.Context, name string, newName string, doBy string) (*domain.Task, error)
	SetCompletion(ctx context.Context, name string, complete bool) (*domain.Task, error)
	ToggleCompletion(ctx context.Context, name string) (*domain.Task, error)
	DeleteTask(ctx context.Context, name string) error
	DeleteAllTasks(ctx context.Context) (int, error)
}

type apiImpl struct {
	repo          sqlite.Repository
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
}

// New creates a new API instance.
func New(repo sqlite.Repository) API {
	return &apiImpl{
		repo:          repo,
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidator(),
	}
}

// CreateTask validates the name and due date, then persists a new
// incomplete task. A name collision fails with a duplicate key error.
func (a *apiImpl) CreateTask(ctx context.Context, name string, doBy string) (*domain.Task, error) {
	cleanedName, err := a.taskValidator.GetValidTaskName("name", name)
	if err != nil {
		return nil, err
	}

	parsedDoBy, err := a.taskValidator.ParseDoBy("do_by", doBy)
	if err != nil {
		return nil, err
	}

	dbTask := &sqlite.Task{Name: cleanedName, DoBy: parsedDoBy}
	if err := a.repo.CreateTask(ctx, dbTask); err != nil {
		return nil, err
	}

	domainTask := a.mapper.Task.FromDatabase(*dbTask)
	return &domainTask, nil
}

// GetTask retrieves a task by its exact name.
func (a *apiImpl) GetTask(ctx context.Context, name string) (*domain.Task, error) {
	dbTask, err := a.repo.GetTask(ctx, name)
	if err != nil {
		return nil, err
	}
	domainTask := a.mapper.Task.FromDatabase(*dbTask)
	return &domainTask, nil
}

// ListTasks returns all tasks sorted ascending by the requested field.
func (a *apiImpl) ListTasks(ctx context.Context, order domain.Order) ([]*domain.Task, error) {
	dbTasks, err := a.repo.ListTasks(ctx, a.mapper.Order.ToDatabase(order))
	if err != nil {
		return nil, err
	}
	return a.mapper.Task.FromDatabaseSlice(dbTasks), nil
}

// SearchTasksByName returns tasks whose name matches exactly. The result
// is a sequence even though names are unique.
func (a *apiImpl) SearchTasksByName(ctx context.Context, name string) ([]*domain.Task, error) {
	dbTasks, err := a.repo.SearchTasksByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return a.mapper.Task.FromDatabaseSlice(dbTasks), nil
}

// UpdateDoBy parses and validates the new due date before mutating.
// The record is untouched on parse failure.
func (a *apiImpl) UpdateDoBy(ctx context.Context, name string, doBy string) (*domain.Task, error) {
	parsedDoBy, err := a.taskValidator.ParseDoBy("new_do_by", doBy)
	if err != nil {
		return nil, err
	}

	if err := a.repo.UpdateDoBy(ctx, name, parsedDoBy); err != nil {
		return nil, err
	}
	return a.GetTask(ctx, name)
}

// RenameTask changes the primary key of an existing task. Renaming onto
// an existing name is rejected with a duplicate key error.
func (a *apiImpl) RenameTask(ctx context.Context, name string, newName string) (*domain.Task, error) {
	cleanedNewName, err := a.taskValidator.GetValidTaskName("new_name", newName)
	if err != nil {
		return nil, err
	}

	if err := a.repo.RenameTask(ctx, name, cleanedNewName); err != nil {
		return nil, err
	}
	return a.GetTask(ctx, cleanedNewName)
}

// UpdateTask replaces the name and due date of an existing task in one
// atomic operation. Used by the browser edit flow.
func (a *apiImpl) UpdateTask(ctx context.Context, name string, newName string, doBy string) (*domain.Task, error) {
	cleanedNewName, err := a.taskValidator.GetValidTaskName("name", newName)
	if err != nil {
		return nil, err
	}

	parsedDoBy, err := a.taskValidator.ParseDoBy("done_by", doBy)
	if err != nil {
		return nil, err
	}

	if err := a.repo.UpdateTask(ctx, name, cleanedNewName, parsedDoBy); err != nil {
		return nil, err
	}
	return a.GetTask(ctx, cleanedNewName)
}

// SetCompletion sets (not toggles) the completion status.
func (a *apiImpl) SetCompletion(ctx context.Context, name string, complete bool) (*domain.Task, error) {
	if err := a.repo.SetCompletion(ctx, name, complete); err != nil {
		return nil, err
	}
	return a.GetTask(ctx, name)
}

// ToggleCompletion flips the completion flag in a single atomic
// read-modify-write, so concurrent toggles on the same name never lose
// an update.
func (a *apiImpl) ToggleCompletion(ctx context.Context, name string) (*domain.Task, error) {
	dbTask, err := a.repo.ToggleCompletion(ctx, name)
	if err != nil {
		return nil, err
	}
	domainTask := a.mapper.Task.FromDatabase(*dbTask)
	return &domainTask, nil
}

// DeleteTask removes one task by name.
func (a *apiImpl) DeleteTask(ctx context.Context, name string) error {
	return a.repo.DeleteTask(ctx, name)
}

// DeleteAllTasks removes every task atomically and reports the count.
func (a *apiImpl) DeleteAllTasks(ctx context.Context) (int, error) {
	return a.repo.DeleteAllTasks(ctx)
}
