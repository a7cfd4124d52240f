package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Supported database drivers
const (
	PostgresDbType = "postgres"
	SqliteDbType   = "sqlite"
)

// DatabaseSettings selects the database driver and its connection string.
// Name is the database created on first start; it is only used by postgres.
type DatabaseSettings struct {
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`
	DSN  string `mapstructure:"dsn"`
	Name string `mapstructure:"name"`
}

// Validate checks the driver type and the fields it requires
func (s *DatabaseSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for DatabaseSettings: %w", err)
	}

	if s.Type == PostgresDbType {
		if s.DSN == "" {
			return fmt.Errorf("dsn is required for postgres")
		}
		if s.Name == "" {
			return fmt.Errorf("database name is required for postgres")
		}
	}

	return nil
}
