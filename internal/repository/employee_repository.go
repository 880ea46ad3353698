package repository

import (
	"employee_project/internal/domain"

	"gorm.io/gorm"
)

type EmployeeRepository struct {
	*Repository[domain.Employee]
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{Repository: NewRepository[domain.Employee](db, "employee")}
}
