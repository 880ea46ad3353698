package graphql

import (
	"context"

	"employee_project/internal/domain"

	graphqlgo "github.com/graph-gophers/graphql-go"
)

const (
	userNotFound       = "user not found"
	invalidCredentials = "Invalid username or password"
	loggedOut          = "Logged out successfully"
)

type userResolver struct {
	u *domain.User
}

func (r *userResolver) ID() graphqlgo.ID {
	return graphqlgo.ID(r.u.ID)
}

func (r *userResolver) Username() string {
	return r.u.Username
}

func (r *userResolver) Password() string {
	return r.u.Password
}

func (r *Resolver) GetUserByID(ctx context.Context, args struct{ ID graphqlgo.ID }) (*userResolver, error) {
	user, err := r.Users.FindByID(ctx, string(args.ID))
	if err != nil {
		return nil, fail(ctx, "getUserById", err, userNotFound)
	}
	return &userResolver{u: user}, nil
}

type credentialsArgs struct {
	Username string
	Password string
}

func (r *Resolver) AddUser(ctx context.Context, args credentialsArgs) (*userResolver, error) {
	hashed, err := r.Passwords.Hash(args.Password)
	if err != nil {
		return nil, fail(ctx, "addUser", err, userNotFound)
	}
	user := &domain.User{Username: args.Username, Password: hashed}
	if err := r.Users.Create(ctx, user); err != nil {
		return nil, fail(ctx, "addUser", err, userNotFound)
	}
	return &userResolver{u: user}, nil
}
