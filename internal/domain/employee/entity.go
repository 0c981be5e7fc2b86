package employee

// Employee is the slice of the employee master record the attendance core reads.
type Employee struct {
	ID            string
	EmployeeCode  string
	Name          string
	Department    string
	AssignedStore string
	Active        bool
}
