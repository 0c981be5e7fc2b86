package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/facility-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const employeeStatusActive = "Active"

type employeeRepository struct {
	db *database.DB
}

// FindByID implements employee.Directory.
func (r *employeeRepository) FindByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, name, department, COALESCE(assigned_store, ''), status
		FROM employees
		WHERE id = $1
	`

	var (
		emp    employee.Employee
		status string
	)
	err := q.QueryRow(ctx, query, strings.TrimSpace(id)).Scan(
		&emp.ID, &emp.EmployeeCode, &emp.Name, &emp.Department, &emp.AssignedStore, &status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}
	emp.Active = strings.EqualFold(status, employeeStatusActive)

	return emp, nil
}

func NewEmployeeRepository(db *database.DB) employee.Directory {
	return &employeeRepository{db: db}
}
