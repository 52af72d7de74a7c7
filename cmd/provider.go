package cmd

import (
	"xplend/core"
	lendingservice "xplend/service/lending"
	poolservice "xplend/service/pool"
	"xplend/store/borrow"
	"xplend/store/pool"
	"xplend/store/supply"
	"xplend/store/transaction"

	"github.com/fox-one/pkg/store/db"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *core.Config {
	return &cfg
}

// ---------------store-----------------------------------------

func providePoolStore(db *db.DB) core.IPoolStore {
	return pool.New(db)
}

func provideSupplyStore(db *db.DB) core.ISupplyStore {
	return supply.New(db)
}

func provideBorrowStore(db *db.DB) core.IBorrowStore {
	return borrow.New(db)
}

func provideTransactionStore(db *db.DB) core.TransactionStore {
	return transaction.New(db)
}

// ---------------service---------------------------------------

func providePoolService(poolStore core.IPoolStore) core.IPoolService {
	return poolservice.New(poolStore)
}

func provideLendingService(database *db.DB,
	poolStore core.IPoolStore,
	poolService core.IPoolService,
	supplyStore core.ISupplyStore,
	borrowStore core.IBorrowStore,
	transactionStore core.TransactionStore) core.ILendingService {
	return lendingservice.New(provideConfig(), database, poolStore, poolService, supplyStore, borrowStore, transactionStore)
}
