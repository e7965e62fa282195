package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoomByUUID matches a chat daemon room by its uuid column.
type RoomByUUID struct {
	RoomID uuid.UUID
}

func (s RoomByUUID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("uuid = ?", s.RoomID)
}

type ByTenantIDs struct {
	TenantIDs []uuid.UUID
}

func (s ByTenantIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("tenant_uuid IN ?", s.TenantIDs)
}
