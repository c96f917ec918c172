package entity

import (
	"time"
)

// BaseSimple is the identity shared by ledger rows that are only ever inserted or deleted.
type BaseSimple struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

// BaseNoDelete adds an update timestamp for rows that are edited in place.
type BaseNoDelete struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
