package models

import "time"

// Probe is a diagnostic row written and read back by the debug endpoint
type Probe struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Message   string    `json:"message" gorm:"size:200"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateProbeRequest struct {
	Message string `json:"message" validate:"required,max=200"`
}
