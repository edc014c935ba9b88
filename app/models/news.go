package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// News type values accepted by the API.
const (
	NewsTypeUpdate      = "update"
	NewsTypeEvent       = "event"
	NewsTypeReset       = "reset"
	NewsTypeMaintenance = "maintenance"
	NewsTypeInfo        = "info"
)

// ValidNewsTypes lists every accepted news type, in the order reported
// back to clients on validation failures.
var ValidNewsTypes = []string{
	NewsTypeUpdate,
	NewsTypeEvent,
	NewsTypeReset,
	NewsTypeMaintenance,
	NewsTypeInfo,
}

// IsValidNewsType reports whether t is one of the accepted news types.
func IsValidNewsType(t string) bool {
	for _, v := range ValidNewsTypes {
		if v == t {
			return true
		}
	}
	return false
}

// News represents a single announcement shown on the game site.
//
// FullDescription carries admin-authored raw HTML and is stored and served
// verbatim. Only authenticated admins can write it; anything rendering the
// field must treat that as the trust boundary.
type News struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Date            string     `gorm:"type:text;not null" json:"date"`
	Title           string     `gorm:"type:text;not null" json:"title" validate:"required"`
	Description     string     `gorm:"type:text;not null" json:"description" validate:"required"`
	Type            string     `gorm:"type:text;not null" json:"type" validate:"required,oneof=update event reset maintenance info"`
	IsNew           bool       `gorm:"default:true" json:"isNew"`
	FullDescription string     `gorm:"type:text;not null" json:"fullDescription" validate:"required"`
	HeaderImage     *string    `gorm:"type:text" json:"headerImage"`
	GalleryImages   StringList `gorm:"type:text" json:"galleryImages"`
	VideoURL        *string    `gorm:"type:text" json:"videoUrl"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName specifies the table name for the News model
func (News) TableName() string {
	return "news"
}

// StringList is a []string persisted as a JSON-encoded TEXT column.
// A NULL column scans to an empty list and the JSON representation is
// never null, so clients always see an array. Element order survives
// the round trip.
type StringList []string

// Value implements driver.Valuer.
func (s StringList) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = StringList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}

	if len(data) == 0 {
		*s = StringList{}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.New("malformed gallery image list")
	}
	if list == nil {
		list = []string{}
	}
	*s = list
	return nil
}

// MarshalJSON keeps the wire format an array even when the list is nil.
func (s StringList) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}
