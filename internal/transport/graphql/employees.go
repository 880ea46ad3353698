package graphql

import (
	"context"

	"employee_project/internal/domain"

	graphqlgo "github.com/graph-gophers/graphql-go"
)

const employeeNotFound = "employee not found"

type employeeResolver struct {
	e *domain.Employee
}

func (r *employeeResolver) ID() graphqlgo.ID { return graphqlgo.ID(r.e.ID) }
func (r *employeeResolver) Firstname() string { return r.e.Firstname }
func (r *employeeResolver) Lastname() string { return r.e.Lastname }
func (r *employeeResolver) Email() string { return r.e.Email }
func (r *employeeResolver) Gender() string { return r.e.Gender }
func (r *employeeResolver) City() string { return r.e.City }
func (r *employeeResolver) Designation() string { return r.e.Designation }
func (r *employeeResolver) Salary() float64 { return r.e.Salary }

func (r *Resolver) GetAllEmployees(ctx context.Context) (*[]*employeeResolver, error) {
	employees, err := r.Employees.FindAll(ctx)
	if err != nil {
		return nil, fail(ctx, "getAllEmployees", err, employeeNotFound)
	}
	out := make([]*employeeResolver, len(employees))
	for i, e := range employees {
		out[i] = &employeeResolver{e: e}
	}
	return &out, nil
}

func (r *Resolver) GetEmployeeByID(ctx context.Context, args struct{ ID graphqlgo.ID }) (*employeeResolver, error) {
	employee, err := r.Employees.FindByID(ctx, string(args.ID))
	if err != nil {
		return nil, fail(ctx, "getEmployeeById", err, employeeNotFound)
	}
	return &employeeResolver{e: employee}, nil
}

type createEmployeeArgs struct {
	Firstname   string
	Lastname    string
	Email       string
	Gender      string
	City        string
	Designation string
	Salary      float64
}

func (r *Resolver) CreateEmployee(ctx context.Context, args createEmployeeArgs) (*employeeResolver, error) {
	employee := &domain.Employee{
		Firstname:   args.Firstname,
		Lastname:    args.Lastname,
		Email:       args.Email,
		Gender:      args.Gender,
		City:        args.City,
		Designation: args.Designation,
		Salary:      args.Salary,
	}
	if err := r.Employees.Create(ctx, employee); err != nil {
		return nil, fail(ctx, "createEmployee", err, employeeNotFound)
	}
	return &employeeResolver{e: employee}, nil
}

type updateEmployeeArgs struct {
	ID          string
	Firstname   *string
	Lastname    *string
	Email       *string
	Gender      *string
	City        *string
	Designation *string
	Salary      *float64
}

// fields lists only the columns the caller supplied.
func (a updateEmployeeArgs) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	set := func(column string, v *string) {
		if v != nil {
			fields[column] = *v
		}
	}
	set("firstname", a.Firstname)
	set("lastname", a.Lastname)
	set("email", a.Email)
	set("gender", a.Gender)
	set("city", a.City)
	set("designation", a.Designation)
	if a.Salary != nil {
		fields["salary"] = *a.Salary
	}
	return fields
}

func (r *Resolver) UpdateEmployee(ctx context.Context, args updateEmployeeArgs) (*employeeResolver, error) {
	employee, err := r.Employees.Update(ctx, args.ID, args.fields())
	if err != nil {
		return nil, fail(ctx, "updateEmployee", err, employeeNotFound)
	}
	return &employeeResolver{e: employee}, nil
}

func (r *Resolver) DeleteEmployee(ctx context.Context, args struct{ ID string }) (*employeeResolver, error) {
	employee, err := r.Employees.Delete(ctx, args.ID)
	if err != nil {
		return nil, fail(ctx, "deleteEmployee", err, employeeNotFound)
	}
	return &employeeResolver{e: employee}, nil
}
