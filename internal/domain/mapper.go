package domain

import (
	"todolist/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(domainTask Task) sqlite.Task {
	return sqlite.Task{
		Name:     domainTask.Name,
		DoBy:     domainTask.DoBy,
		Complete: domainTask.Complete,
	}
}

// FromDatabase converts a database Task to a domain Task.
func (m *TaskMapper) FromDatabase(dbTask sqlite.Task) Task {
	return Task{
		Name:     dbTask.Name,
		DoBy:     dbTask.DoBy,
		Complete: dbTask.Complete,
	}
}

// FromDatabaseSlice converts a slice of database Tasks to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*sqlite.Task) []*Task {
	domainTasks := make([]*Task, len(dbTasks))
	for i, dbTask := range dbTasks {
		domainTask := m.FromDatabase(*dbTask)
		domainTasks[i] = &domainTask
	}
	return domainTasks
}

// OrderMapper handles conversion between domain and database list orders.
type OrderMapper struct{}

// NewOrderMapper creates a new OrderMapper instance.
func NewOrderMapper() *OrderMapper {
	return &OrderMapper{}
}

// ToDatabase converts a domain Order to a database Order.
func (m *OrderMapper) ToDatabase(order Order) sqlite.Order {
	switch order {
	case OrderByName:
		return sqlite.OrderByName
	default:
		return sqlite.OrderByDoBy
	}
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task  *TaskMapper
	Order *OrderMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task:  NewTaskMapper(),
		Order: NewOrderMapper(),
	}
}
