package entities

import "time"

const (
	// DefaultCategoryName is the reserved name of the category that always exists.
	DefaultCategoryName = "通用书签"

	// DefaultIcon is the sentinel icon. Paired with DefaultCategoryName it
	// identifies the default category.
	DefaultIcon = "default"
)

// Icons is the fixed icon vocabulary a category may use.
var Icons = map[string]bool{
	DefaultIcon: true,
	"Bookmark":  true,
	"Book":      true,
	"Briefcase": true,
	"Cloud":     true,
	"Code":      true,
	"Coffee":    true,
	"Database":  true,
	"Film":      true,
	"Folder":    true,
	"Gamepad":   true,
	"Globe":     true,
	"Heart":     true,
	"Home":      true,
	"Image":     true,
	"Mail":      true,
	"Message":   true,
	"Music":     true,
	"News":      true,
	"Server":    true,
	"Shopping":  true,
	"Star":      true,
	"Terminal":  true,
	"Tool":      true,
	"Video":     true,
}

// NormalizeIcon returns icon if it belongs to the vocabulary, DefaultIcon otherwise.
func NormalizeIcon(icon string) string {
	if Icons[icon] {
		return icon
	}
	return DefaultIcon
}

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Icon      string    `gorm:"size:64;not null" json:"icon"`
	IsVisible bool      `gorm:"not null" json:"isVisible"`
	IsPrivate bool      `gorm:"not null" json:"isPrivate"`
	Priority  int       `gorm:"not null;index" json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Category) TableName() string {
	return "categories"
}

// IsDefault reports whether c is the default category.
func (c Category) IsDefault() bool {
	return c.Name == DefaultCategoryName && c.Icon == DefaultIcon
}

// PlaceholderCategory is rendered when the store cannot be read.
func PlaceholderCategory() Category {
	return Category{
		Name:      DefaultCategoryName,
		Icon:      DefaultIcon,
		IsVisible: true,
	}
}
