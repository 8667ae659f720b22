package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"curtainpro-backend/utils"
)

// Order is a write-once snapshot of the entries a draft held at save time.
// Orders are never updated after creation; loading one back produces a fresh
// draft with derived fields recomputed from the stored raw inputs.
type Order struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`

	// Reference is the short human-readable order number printed on the
	// form and quoted in confirmations.
	Reference string `gorm:"uniqueIndex;not null" json:"reference"`

	Entries []WindowEntry `gorm:"foreignKey:OrderID" json:"entries"`
}

// WindowEntry is one persisted window row. Only the raw inputs are stored:
// quantity, track, sqft and panels are a pure function of stitch/width/height
// and are recomputed on load, never persisted. Image bytes live in the blob
// store; only their scheme-prefixed references are kept here.
type WindowEntry struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID  uuid.UUID `gorm:"type:uuid;index;not null" json:"orderId"`
	Position int       `gorm:"not null" json:"position"`

	WindowName   string  `gorm:"not null" json:"windowName"`
	StitchType   string  `gorm:"not null" json:"stitchType"`
	WidthInches  float64 `gorm:"not null" json:"widthInches"`
	HeightInches float64 `gorm:"not null" json:"heightInches"`
	Lining       string  `json:"lining,omitempty"`

	Layer  int        `gorm:"default:0" json:"layer,omitempty"`
	PairID *uuid.UUID `gorm:"type:uuid" json:"pairId,omitempty"`

	ImageRefs StringSlice `gorm:"type:jsonb;default:'[]'" json:"imageRefs"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Reference == "" {
		o.Reference = utils.GenerateRandomString(8)
	}
	return
}

func (e *WindowEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}

// Custom JSON-column type for blob reference lists
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		s = StringSlice{}
	}
	return json.Marshal(s)
}

func (s *StringSlice) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &s)
}
