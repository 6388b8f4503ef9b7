package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// MinSecretLength is the shortest JWT_SECRET accepted at startup.
const MinSecretLength = 32

var (
	// ErrMissingSecret is returned when JWT_SECRET is not set
	ErrMissingSecret = errors.New("JWT_SECRET is required")
	// ErrWeakSecret is returned when JWT_SECRET is shorter than MinSecretLength
	ErrWeakSecret = fmt.Errorf("JWT_SECRET must be at least %d bytes", MinSecretLength)
)

// Validate checks the settings the site cannot run without.
func (c *Config) Validate() error {
	if err := ValidateSecret(c.JWTSecret); err != nil {
		return err
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.S3.Enabled() && (c.S3.AccessKey == "" || c.S3.SecretKey == "" || c.S3.Bucket == "") {
		return errors.New("S3_ACCESS_KEY, S3_SECRET_KEY and S3_BUCKET_NAME are required when S3_ENDPOINT is set")
	}
	return nil
}

// ValidateSecret ensures the token signing secret meets minimum security requirements
func ValidateSecret(secret string) error {
	if secret == "" {
		return ErrMissingSecret
	}
	if len(secret) < MinSecretLength {
		return ErrWeakSecret
	}
	return nil
}

// ValidateEnv validates that all required environment variables are set
func ValidateEnv(requiredVars []string) error {
	var missing []string

	for _, varName := range requiredVars {
		if os.Getenv(varName) == "" {
			missing = append(missing, varName)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}
