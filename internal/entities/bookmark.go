package entities

import "time"

type Bookmark struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	URL         string    `gorm:"uniqueIndex;size:2048;not null" json:"url"`
	CategoryID  *uint     `gorm:"index" json:"categoryId"` // nil = unassigned, resolves to the default category
	Category    *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;" json:"-"`
	Description string    `gorm:"type:text" json:"description"`
	IsPrivate   bool      `gorm:"not null" json:"isPrivate"`
	Priority    int       `gorm:"not null;index" json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}
