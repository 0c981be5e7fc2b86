package employee

import "context"

// Directory looks up employees owned by the employee management module.
type Directory interface {
	// FindByID returns ErrEmployeeNotFound when no employee has the id.
	FindByID(ctx context.Context, id string) (Employee, error)
}
