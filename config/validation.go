package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks that the configuration carries everything the
// server cannot run without. The completion API credential is validated
// separately by the service that owns it.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET (or JWT_SECRET_FILE) is required")
	}
	if cfg.DBHost == "" {
		errors = append(errors, "DB_HOST is required")
	}
	if cfg.DBName == "" {
		errors = append(errors, "DB_NAME is required")
	}
	if GetEnvironment() == Production && cfg.DBPassword == "" {
		errors = append(errors, "DB_PASSWORD (or DB_PASSWORD_FILE) is required in production")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}
	return nil
}
