package user

// LookupUsersRequest carries the optional equality filters of a lookup.
// At least one of them must be set.
type LookupUsersRequest struct {
	ID    *int64
	Name  *string
	Email *string
}

// LookupUsersResponse holds the matching users in store order.
type LookupUsersResponse struct {
	Users []User
}

// CreateUserRequest represents the request payload for creating a new user.
// Fields are pointers so that presence, not content, is what gets validated.
type CreateUserRequest struct {
	Name     *string `validate:"required"`
	Email    *string `validate:"required"`
	Password *string `validate:"required"`
}

// CreateUserResponse carries the id the store assigned to the new user.
type CreateUserResponse struct {
	ID int64
}

// UpdateUserRequest is a partial update: nil fields are left as they are.
type UpdateUserRequest struct {
	ID       int64
	Name     *string
	Email    *string
	Password *string
}

// ReplaceUserRequest overwrites every mutable attribute of a user.
type ReplaceUserRequest struct {
	ID       int64
	Name     *string `validate:"required"`
	Email    *string `validate:"required"`
	Password *string `validate:"required"`
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID int64
}

// DeleteUserResponse reports how many rows the delete removed (0 or 1).
type DeleteUserResponse struct {
	Deleted int64
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID       int64
	Name     string
	Email    string
	Password string
}
