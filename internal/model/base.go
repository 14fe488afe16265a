package model

import (
	"time"
)

// BaseModel is embedded by every entity. Rows are removed with hard
// deletes: the deletion orchestrator depends on dependents actually
// being gone, so there is no gorm.DeletedAt here.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
