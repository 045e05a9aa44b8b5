package postgres

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	usecase "user-crud-service/internal/usecase/user"
)

// TxManager opens one database transaction per unit of work.
type TxManager struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewTxManager creates a TxManager over the given connection pool.
func NewTxManager(db *gorm.DB, log *zap.Logger) *TxManager {
	return &TxManager{db: db, log: log}
}

// WithinTx runs fn with a repository bound to a fresh transaction.
//
// The transaction commits when fn returns nil and rolls back when fn returns
// an error or panics; the error or panic reaches the caller unchanged. The
// underlying connection goes back to the pool on every path.
func (m *TxManager) WithinTx(ctx context.Context, fn func(repo usecase.Repository) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewUserRepoPG(tx, m.log))
	})
}
