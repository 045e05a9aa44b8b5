package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-crud-service/internal/domain/user"
	pkgerrors "user-crud-service/pkg/errors"
)

// UserRepoPG implements user.Repository on top of a GORM handle. The handle is
// normally a transaction opened by TxManager.
type UserRepoPG struct {
	db  *gorm.DB    // GORM connection or transaction
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"` // Unique identifier with auto-increment
	Name     string `gorm:"not null"`
	Email    string `gorm:"not null;index"`
	Password string `gorm:"not null"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func (m UserSchema) toDomain() user.User {
	return user.User{
		ID:       m.ID,
		Name:     m.Name,
		Email:    m.Email,
		Password: m.Password,
	}
}

// Create inserts a new user and returns the store-assigned id.
func (r *UserRepoPG) Create(ctx context.Context, u *user.User) (int64, error) {
	if u == nil {
		return 0, errors.New("user cannot be nil")
	}

	model := UserSchema{
		Name:     u.Name,
		Email:    u.Email,
		Password: u.Password,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return 0, pkgerrors.NewInternalError("failed to create user", err)
	}

	r.log.Info("user created in db", zap.Int64("id", model.ID))
	return model.ID, nil
}

// Find returns the users matching every present field of f, in the order the
// store yields them.
func (r *UserRepoPG) Find(ctx context.Context, f user.Filter) ([]user.User, error) {
	query := r.db.WithContext(ctx).Model(&UserSchema{})
	if f.ID != nil {
		query = query.Where("id = ?", *f.ID)
	}
	if f.Name != nil {
		query = query.Where("name = ?", *f.Name)
	}
	if f.Email != nil {
		query = query.Where("email = ?", *f.Email)
	}

	var models []UserSchema
	if err := query.Find(&models).Error; err != nil {
		r.log.Error("failed to find users in db", zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to find users", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = model.toDomain()
	}

	return users, nil
}

// GetByID returns the single user with the given id. Zero matches yield a
// NotFoundError and more than one a ConflictError.
func (r *UserRepoPG) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var models []UserSchema
	// Two rows are enough to tell "exactly one" from "more than one".
	if err := r.db.WithContext(ctx).Where("id = ?", id).Limit(2).Find(&models).Error; err != nil {
		r.log.Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, pkgerrors.NewInternalError("failed to get user", err)
	}

	switch len(models) {
	case 0:
		r.log.Warn("user not found", zap.Int64("id", id))
		return nil, pkgerrors.NewNotFoundError("user", fmt.Sprintf("user not found: id=%d", id))
	case 1:
		u := models[0].toDomain()
		return &u, nil
	default:
		r.log.Error("multiple users share one id", zap.Int64("id", id))
		return nil, pkgerrors.NewConflictError("user", fmt.Sprintf("multiple users found: id=%d", id))
	}
}

// Update writes every attribute of u to the row identified by u.ID.
func (r *UserRepoPG) Update(ctx context.Context, u *user.User) error {
	if u == nil {
		return errors.New("user cannot be nil")
	}

	result := r.db.WithContext(ctx).
		Model(&UserSchema{ID: u.ID}).
		Select("name", "email", "password").
		Updates(UserSchema{Name: u.Name, Email: u.Email, Password: u.Password})
	if result.Error != nil {
		r.log.Error("failed to update user in db", zap.Error(result.Error), zap.Int64("id", u.ID))
		return pkgerrors.NewInternalError("failed to update user", result.Error)
	}

	r.log.Info("user updated in db", zap.Int64("id", u.ID), zap.Int64("rows", result.RowsAffected))
	return nil
}

// Delete removes the user with the given id and reports how many rows went.
// Deleting a missing id is not an error.
func (r *UserRepoPG) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&UserSchema{})
	if result.Error != nil {
		r.log.Error("failed to delete user in db", zap.Error(result.Error), zap.Int64("id", id))
		return 0, pkgerrors.NewInternalError("failed to delete user", result.Error)
	}

	r.log.Info("user deleted in db", zap.Int64("id", id), zap.Int64("rows", result.RowsAffected))
	return result.RowsAffected, nil
}
