package storage

import (
	"time"

	"gorm.io/datatypes"
)

// simulationModel is the simulations table row. Chosen entities are stored
// as JSON snapshots, not foreign keys, because provider catalogs are not
// durable.
type simulationModel struct {
	ID                 string         `gorm:"primaryKey;type:varchar(36)"`
	UserID             string         `gorm:"index;type:varchar(64);not null"`
	Departure          string         `gorm:"type:varchar(128)"`
	Destination        string         `gorm:"type:varchar(128);not null"`
	StartDate          string         `gorm:"type:varchar(10)"`
	EndDate            string         `gorm:"type:varchar(10)"`
	Adults             int            `gorm:"not null"`
	Children           int            `gorm:"not null"`
	SelectedFlight     datatypes.JSON `gorm:"type:json"`
	SelectedHotel      datatypes.JSON `gorm:"type:json"`
	SelectedActivities datatypes.JSON `gorm:"type:json"`
	TotalCost          float64        `gorm:"not null"`
	CreatedAt          time.Time      `gorm:"autoCreateTime"`
}

// TableName overrides gorm's pluralized default to match the legacy schema.
func (simulationModel) TableName() string {
	return "simulations"
}
