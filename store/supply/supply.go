package supply

import (
	"context"

	"xplend/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type supplyStore struct {
	db *db.DB
}

// New new supply store
func New(db *db.DB) core.ISupplyStore {
	return &supplyStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Supply{})
		if err := tx.AutoMigrate(core.Supply{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *supplyStore) Create(ctx context.Context, tx *db.DB, supply *core.Supply) error {
	if err := tx.Update().Where("user_id=? and asset=?", supply.UserID, supply.Asset).FirstOrCreate(supply).Error; err != nil {
		return err
	}

	return nil
}

func (s *supplyStore) Find(ctx context.Context, userID, asset string) (*core.Supply, bool, error) {
	var supply core.Supply
	if err := s.db.View().Where("user_id=? and asset=?", userID, asset).First(&supply).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, true, nil
		}

		return nil, false, err
	}

	return &supply, false, nil
}

func (s *supplyStore) FindByUser(ctx context.Context, userID string) ([]*core.Supply, error) {
	var supplies []*core.Supply
	if err := s.db.View().Where("user_id=?", userID).Find(&supplies).Error; err != nil {
		return nil, err
	}

	return supplies, nil
}

func (s *supplyStore) Update(ctx context.Context, tx *db.DB, supply *core.Supply) error {
	version := supply.Version
	supply.Version++
	if err := tx.Update().Model(core.Supply{}).Where("user_id=? and asset=? and version=?", supply.UserID, supply.Asset, version).Update(supply).Error; err != nil {
		return err
	}

	return nil
}

func (s *supplyStore) CountOfSuppliers(ctx context.Context, asset string) (int64, error) {
	var count int64
	if err := s.db.View().Model(core.Supply{}).Select("count(user_id)").Where("asset=?", asset).Row().Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
