package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Category groups athletes by competitive level.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	PkID        int64     `bun:"pk_id,pk,autoincrement" json:"-"`
	ID          uuid.UUID `bun:"id,type:uuid,notnull,unique" json:"id"`
	Name        string    `bun:"name,type:varchar(10),notnull,unique" json:"name"`
	Description string    `bun:"description,type:varchar(200),notnull" json:"description"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,notnull" json:"updated_at"`
}
