// Package testutil holds in-memory stores for tests.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"employee_project/internal/domain"

	"github.com/google/uuid"
)

type Users struct {
	mu    sync.Mutex
	users map[string]domain.User
	Err   error
}

func NewUsers() *Users {
	return &Users{users: map[string]domain.User{}}
}

func (m *Users) Create(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	m.users[u.ID] = *u
	return nil
}

func (m *Users) FindByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (m *Users) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

type Employees struct {
	mu        sync.Mutex
	employees map[string]domain.Employee
	order     []string
	Err       error
}

func NewEmployees() *Employees {
	return &Employees{employees: map[string]domain.Employee{}}
}

func (m *Employees) Create(_ context.Context, e *domain.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now()
	m.employees[e.ID] = *e
	m.order = append(m.order, e.ID)
	return nil
}

func (m *Employees) FindByID(_ context.Context, id string) (*domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	e, ok := m.employees[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (m *Employees) FindAll(_ context.Context) ([]*domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]*domain.Employee, 0, len(m.employees))
	for _, id := range m.order {
		if e, ok := m.employees[id]; ok {
			out = append(out, &e)
		}
	}
	return out, nil
}

func (m *Employees) Update(_ context.Context, id string, fields map[string]interface{}) (*domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	e, ok := m.employees[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	for column, v := range fields {
		switch column {
		case "firstname":
			e.Firstname = v.(string)
		case "lastname":
			e.Lastname = v.(string)
		case "email":
			e.Email = v.(string)
		case "gender":
			e.Gender = v.(string)
		case "city":
			e.City = v.(string)
		case "designation":
			e.Designation = v.(string)
		case "salary":
			e.Salary = v.(float64)
		default:
			return nil, fmt.Errorf("unknown column %q", column)
		}
	}
	m.employees[id] = e
	return &e, nil
}

func (m *Employees) Delete(_ context.Context, id string) (*domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	e, ok := m.employees[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(m.employees, id)
	return &e, nil
}

type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	Err      error
}

func NewSessions() *Sessions {
	return &Sessions{sessions: map[string]*domain.Session{}}
}

func (m *Sessions) Create(_ context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *Sessions) Get(_ context.Context, id string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.IsExpired() {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (m *Sessions) Destroy(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.sessions, id)
	return nil
}

func (m *Users) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

// Cache is an in-memory idempotency cache. TTLs are ignored.
type Cache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewCache() *Cache {
	return &Cache{data: map[string][]byte{}}
}

func (c *Cache) GetBytes(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

func (c *Cache) SetBytes(_ context.Context, key string, value []byte, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}
