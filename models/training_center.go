package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// TrainingCenter is the gym an athlete trains at.
type TrainingCenter struct {
	bun.BaseModel `bun:"table:training_centers,alias:tc"`

	PkID         int64     `bun:"pk_id,pk,autoincrement" json:"-"`
	ID           uuid.UUID `bun:"id,type:uuid,notnull,unique" json:"id"`
	Name         string    `bun:"name,type:varchar(50),notnull,unique" json:"name"`
	Address      string    `bun:"address,type:varchar(200),notnull" json:"address"`
	PropertyName string    `bun:"property_name,type:varchar(100),notnull" json:"property_name"`
	CreatedAt    time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,notnull" json:"updated_at"`
}
