// internal/config/database.go
package config

import (
	"fmt"
	"strings"
	"time"
)

// DSN renders the libpq key/value connection string. Empty parts are left
// out so the driver defaults apply.
func (d *DatabaseConfig) DSN() string {
	parts := []struct{ key, value string }{
		{"host", d.Host},
		{"port", d.Port},
		{"user", d.User},
		{"password", d.Password},
		{"dbname", d.Database},
		{"sslmode", d.SSLMode},
	}

	var out []string
	for _, p := range parts {
		if p.value != "" {
			out = append(out, fmt.Sprintf("%s=%s", p.key, p.value))
		}
	}
	return strings.Join(out, " ")
}

func (d *DatabaseConfig) ConnMaxLifetime() time.Duration {
	return time.Duration(d.MaxLifetime) * time.Second
}
