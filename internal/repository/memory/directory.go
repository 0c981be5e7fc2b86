package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/store"
)

// EmployeeDirectory is an employee.Directory backed by a map.
type EmployeeDirectory struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

func NewEmployeeDirectory(employees ...employee.Employee) *EmployeeDirectory {
	d := &EmployeeDirectory{employees: make(map[string]employee.Employee)}
	for _, e := range employees {
		d.Put(e)
	}
	return d
}

// Put inserts or replaces an employee.
func (d *EmployeeDirectory) Put(e employee.Employee) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.employees[e.ID] = e
}

func (d *EmployeeDirectory) FindByID(ctx context.Context, id string) (employee.Employee, error) {
	if err := ctx.Err(); err != nil {
		return employee.Employee{}, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	e, ok := d.employees[strings.TrimSpace(id)]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

// StoreDirectory is a store.Directory backed by a slice.
type StoreDirectory struct {
	mu     sync.RWMutex
	stores []store.Store
}

func NewStoreDirectory(stores ...store.Store) *StoreDirectory {
	return &StoreDirectory{stores: append([]store.Store(nil), stores...)}
}

func (d *StoreDirectory) FindByCode(ctx context.Context, code string) (store.Store, error) {
	if err := ctx.Err(); err != nil {
		return store.Store{}, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	code = strings.TrimSpace(code)
	for _, s := range d.stores {
		if strings.EqualFold(s.Code, code) {
			return s, nil
		}
	}
	return store.Store{}, store.ErrStoreNotFound
}

func (d *StoreDirectory) FindByIDOrCode(ctx context.Context, value string) (store.Store, error) {
	if err := ctx.Err(); err != nil {
		return store.Store{}, err
	}

	d.mu.RLock()
	value = strings.TrimSpace(value)
	for _, s := range d.stores {
		if s.ID == value {
			d.mu.RUnlock()
			return s, nil
		}
	}
	d.mu.RUnlock()

	return d.FindByCode(ctx, value)
}
