package service

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const fechaFormat = "2006-01-02 15:04:05"

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func fmtFecha(t time.Time) string { return t.Format(fechaFormat) }

func fmtFechaPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(fechaFormat)
	return &s
}
