package scope

import "gorm.io/gorm"

// OrderByCreatedAsc sorts rows oldest first, the order every listing in
// this service uses.
func OrderByCreatedAsc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}
