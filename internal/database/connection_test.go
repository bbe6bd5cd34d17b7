// internal/database/connection_test.go
package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"

	"github.com/javajoker/cartlink/internal/attributes"
)

func TestGormLogLevel(t *testing.T) {
	tests := map[string]logger.LogLevel{
		"":        logger.Silent,
		"silent":  logger.Silent,
		"ERROR":   logger.Error,
		"warning": logger.Warn,
		"info":    logger.Info,
		"verbose": logger.Silent,
	}
	for in, want := range tests {
		assert.Equal(t, want, gormLogLevel(in), in)
	}
}

func TestDefaultTaxonomies(t *testing.T) {
	seen := map[string]bool{}
	for _, def := range defaultTaxonomies {
		assert.False(t, seen[def.Taxonomy.Taxonomy()], "duplicate taxonomy %s", def.Taxonomy.Name)
		seen[def.Taxonomy.Taxonomy()] = true
		assert.NotEmpty(t, def.Terms)

		slugs := map[string]bool{}
		for _, term := range def.Terms {
			s := attributes.Slugify(term)
			assert.False(t, slugs[s], "duplicate term slug %s", s)
			slugs[s] = true
		}
	}
	assert.True(t, seen["pa_color"])
	assert.True(t, seen["pa_size"])
}

func TestIndexStatementsAreIdempotent(t *testing.T) {
	for _, stmt := range indexStatements {
		assert.Contains(t, stmt, "IF NOT EXISTS")
	}
	assert.Len(t, migratedModels(), 7)
}
