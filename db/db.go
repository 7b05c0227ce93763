package db

import (
	"poolwatch/types"
)

type Database interface {
	Close() error
	EnsureDatabaseExists() error
	CreateTables() error
	DropTables() error

	Exec(query string, args ...any) error
	InsertBalanceChanges(changes []*types.PoolBalanceChange) error

	QueryBalanceChangeCount() (uint64, error)
}
