package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// conn returns tx when the caller runs inside a transaction, db otherwise
func conn(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}

// forUpdate adds a FOR UPDATE row lock. SQLite has no row locks; its
// transactions already hold the database write lock.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
