package entities

// ConfigEntry is a row of the key/value config table.
type ConfigEntry struct {
	Key   string `gorm:"column:config_key;primaryKey;size:100" json:"key"`
	Value string `gorm:"column:config_value;type:text" json:"value"`
}

func (ConfigEntry) TableName() string {
	return "config"
}

// Known config keys
const (
	ConfigKeyAdminHashedPassword = "adminHashedPassword"
	ConfigKeySetupCompleted      = "setupCompleted"
	ConfigKeyLogoText            = "logoText"
	ConfigKeyLogoIcon            = "logoIcon"
)

// Defaults applied when the logo keys are unset.
const (
	DefaultLogoText = "My Bookmarks"
	DefaultLogoIcon = "Bookmark"
)

// ConfigValueTrue is the stored form of a true flag.
const ConfigValueTrue = "true"
