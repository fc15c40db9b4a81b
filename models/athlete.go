package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Athlete is a registered competitor. Category and TrainingCenter are only
// populated when the query asked for them with Relation.
type Athlete struct {
	bun.BaseModel `bun:"table:athletes,alias:a"`

	PkID     int64     `bun:"pk_id,pk,autoincrement" json:"-"`
	ID       uuid.UUID `bun:"id,type:uuid,notnull,unique" json:"id"`
	Name     string    `bun:"name,type:varchar(50),notnull" json:"name"`
	Document string    `bun:"document,type:varchar(14),notnull,unique" json:"document"`
	Age      int       `bun:"age,notnull" json:"age"`
	Weight   float64   `bun:"weight,notnull" json:"weight"`
	Height   float64   `bun:"height,notnull" json:"height"`
	Gender   string    `bun:"gender,type:varchar(1),notnull" json:"gender"`

	CategoryID       int64           `bun:"category_id,notnull" json:"-"`
	Category         *Category       `bun:"rel:belongs-to,join:category_id=pk_id" json:"-"`
	TrainingCenterID int64           `bun:"training_center_id,notnull" json:"-"`
	TrainingCenter   *TrainingCenter `bun:"rel:belongs-to,join:training_center_id=pk_id" json:"-"`

	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}
