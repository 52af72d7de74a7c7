package borrow

import (
	"context"

	"xplend/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type borrowStore struct {
	db *db.DB
}

// New new borrow store
func New(db *db.DB) core.IBorrowStore {
	return &borrowStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Borrow{})
		if err := tx.AutoMigrate(core.Borrow{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *borrowStore) Create(ctx context.Context, tx *db.DB, borrow *core.Borrow) error {
	if err := tx.Update().Create(borrow).Error; err != nil {
		return err
	}

	return nil
}

func (s *borrowStore) Find(ctx context.Context, userID, id string) (*core.Borrow, bool, error) {
	var borrow core.Borrow
	if err := s.db.View().Where("id=? and user_id=?", id, userID).First(&borrow).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, true, nil
		}

		return nil, false, err
	}

	return &borrow, false, nil
}

func (s *borrowStore) FindByUser(ctx context.Context, userID string) ([]*core.Borrow, error) {
	var borrows []*core.Borrow
	if err := s.db.View().Where("user_id=?", userID).Find(&borrows).Error; err != nil {
		return nil, err
	}

	return borrows, nil
}

func (s *borrowStore) Update(ctx context.Context, tx *db.DB, borrow *core.Borrow) error {
	version := borrow.Version
	borrow.Version++
	if err := tx.Update().Model(core.Borrow{}).Where("id=? and version=?", borrow.ID, version).Update(borrow).Error; err != nil {
		return err
	}

	return nil
}

func (s *borrowStore) CountOfBorrowers(ctx context.Context, asset string) (int64, error) {
	var count int64
	if err := s.db.View().Model(core.Borrow{}).Select("count(distinct user_id)").Where("asset=?", asset).Row().Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
