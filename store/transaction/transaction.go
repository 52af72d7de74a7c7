package transaction

import (
	"context"

	"xplend/core"

	"github.com/fox-one/pkg/store/db"
)

type transactionStore struct {
	db *db.DB
}

// New new transaction store
func New(db *db.DB) core.TransactionStore {
	return &transactionStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Transaction{})
		if err := tx.AutoMigrate(core.Transaction{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *transactionStore) Create(ctx context.Context, tx *db.DB, transaction *core.Transaction) error {
	if err := tx.Update().Create(transaction).Error; err != nil {
		return err
	}

	return nil
}

func (s *transactionStore) ListByUser(ctx context.Context, userID string, limit int) ([]*core.Transaction, error) {
	var transactions []*core.Transaction
	if err := s.db.View().Where("user_id=?", userID).Order("created_at desc").Limit(limit).Find(&transactions).Error; err != nil {
		return nil, err
	}

	return transactions, nil
}
