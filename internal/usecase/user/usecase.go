package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "user-crud-service/internal/domain/user"
	pkgerrors "user-crud-service/pkg/errors"
	"user-crud-service/pkg/logger"
)

// Repository defines the user data access operations available inside a
// transaction.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (int64, error)        // Insert a user, returning the new id
	Find(ctx context.Context, f domain.Filter) ([]domain.User, error) // AND of present filters, store order
	GetByID(ctx context.Context, id int64) (*domain.User, error)      // Exactly one row or NotFound/Conflict
	Update(ctx context.Context, u *domain.User) error                 // Overwrite all mutable attributes
	Delete(ctx context.Context, id int64) (int64, error)              // Rows removed, 0 when absent
}

// Transactor scopes a unit of work to one database transaction. It commits
// when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(repo Repository) error) error
}

// UserUsecase implements the business logic for user management operations.
type UserUsecase struct {
	tx       Transactor
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new UserUsecase.
func New(tx Transactor, log *zap.Logger) *UserUsecase {
	return &UserUsecase{tx: tx, log: log, validate: validator.New()}
}

var _ Usecase = (*UserUsecase)(nil)

// formatValidationError converts validator.ValidationErrors into a ValidationError.
func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", strings.ToLower(e.Field())))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", strings.ToLower(e.Field())))
		}
	}
	return pkgerrors.NewValidationError("", strings.Join(messages, ", "))
}

// LookupUsers returns the users matching all supplied filters. A lookup
// without any filter is rejected; there is no list-all mode.
func (uc *UserUsecase) LookupUsers(ctx context.Context, in LookupUsersRequest) (*LookupUsersResponse, error) {
	log := logger.WithContext(ctx, uc.log)

	filter := domain.Filter{ID: in.ID, Name: in.Name, Email: in.Email}
	if filter.IsEmpty() {
		log.Warn("lookup without filters")
		return nil, pkgerrors.NewValidationError("", "there's no query parameter")
	}

	var found []domain.User
	err := uc.tx.WithinTx(ctx, func(repo Repository) error {
		var err error
		found, err = repo.Find(ctx, filter)
		return err
	})
	if err != nil {
		log.Error("failed to look up users", zap.Error(err))
		return nil, err
	}

	users := make([]User, len(found))
	for i, u := range found {
		users[i] = User{ID: u.ID, Name: u.Name, Email: u.Email, Password: u.Password}
	}

	log.Debug("users looked up", zap.Int("count", len(users)))
	return &LookupUsersResponse{Users: users}, nil
}

// CreateUser inserts a new user. The id is assigned by the store.
func (uc *UserUsecase) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	log := logger.WithContext(ctx, uc.log)

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	log.Info("creating user", zap.String("name", *in.Name), zap.String("email", *in.Email))

	var id int64
	err := uc.tx.WithinTx(ctx, func(repo Repository) error {
		var err error
		id, err = repo.Create(ctx, &domain.User{
			Name:     *in.Name,
			Email:    *in.Email,
			Password: *in.Password,
		})
		return err
	})
	if err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	return &CreateUserResponse{ID: id}, nil
}

// UpdateUser applies only the fields present in the request to the user.
func (uc *UserUsecase) UpdateUser(ctx context.Context, in UpdateUserRequest) error {
	log := logger.WithContext(ctx, uc.log)
	log.Info("updating user", zap.Int64("id", in.ID))

	patch := domain.Patch{Name: in.Name, Email: in.Email, Password: in.Password}
	err := uc.tx.WithinTx(ctx, func(repo Repository) error {
		return uc.modify(ctx, repo, in.ID, patch)
	})
	if err != nil {
		log.Error("failed to update user", zap.Int64("id", in.ID), zap.Error(err))
		return err
	}

	return nil
}

// ReplaceUser overwrites name, email and password of the user.
func (uc *UserUsecase) ReplaceUser(ctx context.Context, in ReplaceUserRequest) error {
	log := logger.WithContext(ctx, uc.log)

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return formatValidationError(err)
	}

	log.Info("replacing user", zap.Int64("id", in.ID))

	// A patch with every field present is a full replacement.
	patch := domain.Patch{Name: in.Name, Email: in.Email, Password: in.Password}
	err := uc.tx.WithinTx(ctx, func(repo Repository) error {
		return uc.modify(ctx, repo, in.ID, patch)
	})
	if err != nil {
		log.Error("failed to replace user", zap.Int64("id", in.ID), zap.Error(err))
		return err
	}

	return nil
}

// modify loads the single user with the given id, applies patch and saves it.
func (uc *UserUsecase) modify(ctx context.Context, repo Repository, id int64, patch domain.Patch) error {
	u, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	patch.Apply(u)

	return repo.Update(ctx, u)
}

// DeleteUser removes the user with the given id. A missing user is not an error.
func (uc *UserUsecase) DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("deleting user", zap.Int64("id", in.ID))

	var deleted int64
	err := uc.tx.WithinTx(ctx, func(repo Repository) error {
		var err error
		deleted, err = repo.Delete(ctx, in.ID)
		return err
	})
	if err != nil {
		log.Error("failed to delete user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	if deleted == 0 {
		log.Debug("delete matched no user", zap.Int64("id", in.ID))
	}

	return &DeleteUserResponse{Deleted: deleted}, nil
}
