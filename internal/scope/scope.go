package scope

import (
	"time"

	"gorm.io/gorm"
)

// ActiveOnly filters out soft-deleted rows. Read paths that must still see
// deactivated records (getAll, getByID) simply skip this scope.
func ActiveOnly(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// Effective keeps rows whose effective/expiry window contains now. A null
// boundary is open-ended.
func Effective(now time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Where("effective_date IS NULL OR effective_date <= ?", now).
			Where("expiry_date IS NULL OR expiry_date >= ?", now)
	}
}
