package pool

import (
	"context"

	"xplend/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type poolStore struct {
	db *db.DB
}

// New new pool store
func New(db *db.DB) core.IPoolStore {
	return &poolStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Pool{})
		if err := tx.AutoMigrate(core.Pool{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// Create creates the pool row. The unique index on asset plus
// FirstOrCreate keeps lazy creation idempotent under race.
func (s *poolStore) Create(ctx context.Context, pool *core.Pool) error {
	if err := s.db.Update().Where("asset=?", pool.Asset).FirstOrCreate(pool).Error; err != nil {
		return err
	}

	return nil
}

func (s *poolStore) Find(ctx context.Context, asset string) (*core.Pool, bool, error) {
	var pool core.Pool
	if err := s.db.View().Where("asset=?", asset).First(&pool).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, true, nil
		}

		return nil, false, err
	}

	return &pool, false, nil
}

func (s *poolStore) All(ctx context.Context) ([]*core.Pool, error) {
	var pools []*core.Pool
	if err := s.db.View().Find(&pools).Error; err != nil {
		return nil, err
	}

	return pools, nil
}

func (s *poolStore) Update(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	version := pool.Version
	pool.Version++
	if err := tx.Update().Model(core.Pool{}).Where("asset=? and version=?", pool.Asset, version).Update(pool).Error; err != nil {
		return err
	}

	return nil
}
