package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domain "user-crud-service/internal/domain/user"
	pkgerrors "user-crud-service/pkg/errors"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Find(ctx context.Context, f domain.Filter) ([]domain.User, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// fakeTransactor runs the unit of work against the mock repository and
// records whether it would have committed or rolled back.
type fakeTransactor struct {
	repo       Repository
	calls      int
	committed  int
	rolledBack int
}

func (f *fakeTransactor) WithinTx(_ context.Context, fn func(repo Repository) error) error {
	f.calls++
	if err := fn(f.repo); err != nil {
		f.rolledBack++
		return err
	}
	f.committed++
	return nil
}

func setupTestUsecase(t *testing.T) (*UserUsecase, *MockRepository, *fakeTransactor) {
	mockRepo := new(MockRepository)
	tx := &fakeTransactor{repo: mockRepo}
	uc := New(tx, zaptest.NewLogger(t))
	return uc, mockRepo, tx
}

func strPtr(s string) *string { return &s }

func int64Ptr(i int64) *int64 { return &i }

// ==================== LOOKUP USERS TESTS ====================

func TestLookupUsers_NoFilter(t *testing.T) {
	uc, mockRepo, tx := setupTestUsecase(t)

	resp, err := uc.LookupUsers(context.Background(), LookupUsersRequest{})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Contains(t, err.Error(), "there's no query parameter")
	assert.Zero(t, tx.calls, "no transaction should be opened")
	mockRepo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestLookupUsers_CombinesFilters(t *testing.T) {
	tests := []struct {
		name string
		req  LookupUsersRequest
		want domain.Filter
	}{
		{
			name: "id only",
			req:  LookupUsersRequest{ID: int64Ptr(1)},
			want: domain.Filter{ID: int64Ptr(1)},
		},
		{
			name: "name and email",
			req:  LookupUsersRequest{Name: strPtr("Al"), Email: strPtr("al@x.com")},
			want: domain.Filter{Name: strPtr("Al"), Email: strPtr("al@x.com")},
		},
		{
			name: "all three",
			req:  LookupUsersRequest{ID: int64Ptr(2), Name: strPtr("Al"), Email: strPtr("al@x.com")},
			want: domain.Filter{ID: int64Ptr(2), Name: strPtr("Al"), Email: strPtr("al@x.com")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, mockRepo, tx := setupTestUsecase(t)
			ctx := context.Background()

			mockRepo.On("Find", ctx, tt.want).Return([]domain.User{
				{ID: 1, Name: "Al", Email: "al@x.com", Password: "p"},
			}, nil)

			resp, err := uc.LookupUsers(ctx, tt.req)

			require.NoError(t, err)
			require.Len(t, resp.Users, 1)
			assert.Equal(t, User{ID: 1, Name: "Al", Email: "al@x.com", Password: "p"}, resp.Users[0])
			assert.Equal(t, 1, tx.committed)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestLookupUsers_EmptyResult(t *testing.T) {
	uc, mockRepo, _ := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("Find", ctx, mock.Anything).Return([]domain.User{}, nil)

	resp, err := uc.LookupUsers(ctx, LookupUsersRequest{Email: strPtr("none@x.com")})

	require.NoError(t, err)
	assert.NotNil(t, resp.Users)
	assert.Empty(t, resp.Users)
}

func TestLookupUsers_RepositoryError(t *testing.T) {
	uc, mockRepo, tx := setupTestUsecase(t)
	ctx := context.Background()

	dbErr := errors.New("connection lost")
	mockRepo.On("Find", ctx, mock.Anything).Return(nil, dbErr)

	resp, err := uc.LookupUsers(ctx, LookupUsersRequest{ID: int64Ptr(1)})

	assert.ErrorIs(t, err, dbErr)
	assert.Nil(t, resp)
	assert.Equal(t, 1, tx.rolledBack)
}

// ==================== CREATE USER TESTS ====================

func TestCreateUser_Success(t *testing.T) {
	uc, mockRepo, tx := setupTestUsecase(t)
	ctx := context.Background()

	req := CreateUserRequest{Name: strPtr("Al"), Email: strPtr("al@x.com"), Password: strPtr("p")}

	mockRepo.On("Create", ctx, &domain.User{Name: "Al", Email: "al@x.com", Password: "p"}).Return(int64(1), nil)

	resp, err := uc.CreateUser(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, 1, tx.committed)
	mockRepo.AssertExpectations(t)
}

func TestCreateUser_EmptyStringsAreAccepted(t *testing.T) {
	uc, mockRepo, _ := setupTestUsecase(t)
	ctx := context.Background()

	req := CreateUserRequest{Name: strPtr(""), Email: strPtr(""), Password: strPtr("")}

	mockRepo.On("Create", ctx, &domain.User{}).Return(int64(5), nil)

	resp, err := uc.CreateUser(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
}

func TestCreateUser_MissingFields(t *testing.T) {
	uc, mockRepo, tx := setupTestUsecase(t)

	resp, err := uc.CreateUser(context.Background(), CreateUserRequest{Name: strPtr("Al")})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Contains(t, err.Error(), "email is required")
	assert.Contains(t, err.Error(), "password is required")
	assert.Zero(t, tx.calls)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateUser_RepositoryError(t *testing.T) {
	uc, mockRepo, tx := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.Anything).Return(int64(0), errors.New("constraint violation"))

	resp, err := uc.CreateUser(ctx, CreateUserRequest{Name: strPtr("Al"), Email: strPtr("al@x.com"), Password: strPtr("p")})

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, 1, tx.rolledBack)
}

// ==================== UPDATE USER TESTS ====================

func TestUpdateUser_OnlyPresentFieldsChange(t *testing.T) {
	uc, mockRepo, tx := setupTestUsecase(t)
	ctx := context.Background()

	existing := &domain.User{ID: 1, Name: "Al", Email: "al@x.com", Password: "p"}
	mockRepo.On("GetByID", ctx, int64(1)).Return(existing, nil)
	mockRepo.On("Update", ctx, &domain.User{ID: 1, Name: "Al", Email: "new@x.com", Password: "p"}).Return(nil)

	err := uc.UpdateUser(ctx, UpdateUserRequest{ID: 1, Email: strPtr("new@x.com")})

	require.NoError(t, err)
	assert.Equal(t, 1, tx.committed)
	mockRepo.AssertExpectations(t)
}

func TestUpdateUser_EmptyPatchStillResolvesUser(t *testing.T) {
	uc, mockRepo, _ := setupTestUsecase(t)
	ctx := context.Background()

	existing := &domain.User{ID: 1, Name: "Al", Email: "al@x.com", Password: "p"}
	mockRepo.On("GetByID", ctx, int64(1)).Return(existing, nil)
	mockRepo.On("Update", ctx, &domain.User{ID: 1, Name: "Al", Email: "al@x.com", Password: "p"}).Return(nil)

	require.NoError(t, uc.UpdateUser(ctx, UpdateUserRequest{ID: 1}))
	mockRepo.AssertExpectations(t)
}

func TestUpdateUser_NotFound(t *testing.T) {
	uc, mockRepo, tx := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, int64(42)).Return(nil, pkgerrors.NewNotFoundError("user", "user not found: id=42"))

	err := uc.UpdateUser(ctx, UpdateUserRequest{ID: 42, Name: strPtr("x")})

	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Equal(t, 1, tx.rolledBack)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateUser_Ambiguous(t *testing.T) {
	uc, mockRepo, tx := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, int64(7)).Return(nil, pkgerrors.NewConflictError("user", "multiple users found: id=7"))

	err := uc.UpdateUser(ctx, UpdateUserRequest{ID: 7, Name: strPtr("x")})

	require.Error(t, err)
	assert.Equal(t, codes.Aborted, status.Code(err))
	assert.Equal(t, 1, tx.rolledBack)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateUser_SaveFails(t *testing.T) {
	uc, mockRepo, tx := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, int64(1)).Return(&domain.User{ID: 1, Name: "Al"}, nil)
	mockRepo.On("Update", ctx, mock.Anything).Return(errors.New("deadlock"))

	err := uc.UpdateUser(ctx, UpdateUserRequest{ID: 1, Name: strPtr("Alan")})

	assert.EqualError(t, err, "deadlock")
	assert.Equal(t, 1, tx.rolledBack)
}

// ==================== REPLACE USER TESTS ====================

func TestReplaceUser_OverwritesAllFields(t *testing.T) {
	uc, mockRepo, tx := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, int64(1)).Return(&domain.User{ID: 1, Name: "Al", Email: "al@x.com", Password: "p"}, nil)
	mockRepo.On("Update", ctx, &domain.User{ID: 1, Name: "Bo", Email: "bo@x.com", Password: "q"}).Return(nil)

	err := uc.ReplaceUser(ctx, ReplaceUserRequest{ID: 1, Name: strPtr("Bo"), Email: strPtr("bo@x.com"), Password: strPtr("q")})

	require.NoError(t, err)
	assert.Equal(t, 1, tx.committed)
	mockRepo.AssertExpectations(t)
}

func TestReplaceUser_MissingField(t *testing.T) {
	uc, mockRepo, tx := setupTestUsecase(t)

	err := uc.ReplaceUser(context.Background(), ReplaceUserRequest{ID: 1, Name: strPtr("Bo"), Email: strPtr("bo@x.com")})

	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Contains(t, err.Error(), "password is required")
	assert.Zero(t, tx.calls)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestReplaceUser_NotFound(t *testing.T) {
	uc, mockRepo, _ := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, int64(9)).Return(nil, pkgerrors.NewNotFoundError("user", ""))

	err := uc.ReplaceUser(ctx, ReplaceUserRequest{ID: 9, Name: strPtr("Bo"), Email: strPtr("bo@x.com"), Password: strPtr("q")})

	assert.Equal(t, codes.NotFound, status.Code(err))
}

// ==================== DELETE USER TESTS ====================

func TestDeleteUser_Success(t *testing.T) {
	uc, mockRepo, tx := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("Delete", ctx, int64(1)).Return(int64(1), nil)

	resp, err := uc.DeleteUser(ctx, DeleteUserRequest{ID: 1})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Deleted)
	assert.Equal(t, 1, tx.committed)
}

func TestDeleteUser_MissingIsNotAnError(t *testing.T) {
	uc, mockRepo, _ := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("Delete", ctx, int64(99)).Return(int64(0), nil)

	resp, err := uc.DeleteUser(ctx, DeleteUserRequest{ID: 99})

	require.NoError(t, err)
	assert.Zero(t, resp.Deleted)
}

func TestDeleteUser_RepositoryError(t *testing.T) {
	uc, mockRepo, tx := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("Delete", ctx, int64(1)).Return(int64(0), errors.New("connection lost"))

	resp, err := uc.DeleteUser(ctx, DeleteUserRequest{ID: 1})

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, 1, tx.rolledBack)
}
