package user

import "context"

// Usecase defines the interface for user business logic operations.
type Usecase interface {
	LookupUsers(ctx context.Context, in LookupUsersRequest) (*LookupUsersResponse, error)
	CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error)
	UpdateUser(ctx context.Context, in UpdateUserRequest) error
	ReplaceUser(ctx context.Context, in ReplaceUserRequest) error
	DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error)
}
