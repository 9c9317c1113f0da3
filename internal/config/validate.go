package config

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Auth.PasswordHashCost < bcrypt.MinCost || c.Auth.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.password_hash_cost must be between %d and %d (got %d)",
			bcrypt.MinCost, bcrypt.MaxCost, c.Auth.PasswordHashCost)
	}

	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}
	if c.Auth.RefreshTokenTTL <= c.Auth.AccessTokenTTL {
		return fmt.Errorf("auth.refresh_token_ttl must exceed access_token_ttl")
	}

	if !strings.HasPrefix(c.Sugoku.BaseURL, "http://") && !strings.HasPrefix(c.Sugoku.BaseURL, "https://") {
		return fmt.Errorf("sugoku.base_url must be an http(s) URL (got %q)", c.Sugoku.BaseURL)
	}
	if c.Sugoku.Timeout <= 0 {
		return fmt.Errorf("sugoku.timeout must be > 0 (got %v)", c.Sugoku.Timeout)
	}

	return nil
}
