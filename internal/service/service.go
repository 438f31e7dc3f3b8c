package service

import (
	"database/sql"

	"gorm.io/gorm"
)

// TxRunner is the slice of *gorm.DB the commit paths need: run a function
// inside one database transaction. Satisfied by *gorm.DB in production and by
// a stub in tests.
type TxRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}
