package graphql

import (
	"context"
	"time"

	"employee_project/internal/domain"
	"employee_project/internal/session"
	"employee_project/pkg/logger"

	"go.uber.org/zap"
)

type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

type EmployeeStore interface {
	Create(ctx context.Context, employee *domain.Employee) error
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	FindAll(ctx context.Context) ([]*domain.Employee, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*domain.Employee, error)
	Delete(ctx context.Context, id string) (*domain.Employee, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hashed string) bool
}

type TokenIssuer interface {
	Issue(identity domain.Identity) (string, error)
}

// Resolver is the root resolver for both Query and Mutation.
type Resolver struct {
	Users      UserStore
	Employees  EmployeeStore
	Passwords  PasswordHasher
	Tokens     TokenIssuer
	Sessions   session.Store
	SessionTTL time.Duration
}

const internalMessage = "internal server error"

// fail turns err into something safe to show a client. Unclassified errors are logged
// and replaced with a generic INTERNAL error.
func fail(ctx context.Context, op string, err error, notFound string) error {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return domain.NewError(domain.KindNotFound, "%s", notFound)
	case domain.KindInternal:
		fields := []zap.Field{zap.String("operation", op), zap.Error(err)}
		if rc := session.FromContext(ctx); rc.Authenticated() {
			fields = append(fields, zap.String("user_id", rc.Identity.UserID))
		}
		logger.Logger.Error("Resolver failed", fields...)
		return domain.NewError(domain.KindInternal, internalMessage)
	default:
		return err
	}
}
