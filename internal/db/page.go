package db

import "time"

// Page is a named page record. ID and CreatedOn are assigned on insert and
// never change; UpdatedOn stays nil until the first update.
type Page struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	PageName  string     `gorm:"column:page_name;type:text;not null" json:"page_name"`
	CreatedOn time.Time  `gorm:"column:created_on;not null" json:"created_on"`
	UpdatedOn *time.Time `gorm:"column:updated_on" json:"updated_on"`
}

// TableName 保持与既有库表一致的单数表名
func (Page) TableName() string {
	return "page"
}
