package config

const (
	// DefaultDatabasePath is the default path for the dashboard database
	DefaultDatabasePath = "./navboard.db"

	// DefaultMaxOpenConns bounds concurrently open store transactions
	DefaultMaxOpenConns = 10

	// DefaultBcryptCost is the cost factor for the admin credential hash
	DefaultBcryptCost = 10
)
