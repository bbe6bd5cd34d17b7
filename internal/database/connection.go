// internal/database/connection.go
package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javajoker/cartlink/internal/attributes"
	"github.com/javajoker/cartlink/internal/config"
	"github.com/javajoker/cartlink/internal/models"
	"github.com/javajoker/cartlink/internal/utils"
)

const generatedPasswordLength = 16

// gormLogLevel maps DB_LOG_LEVEL onto the gorm logger levels.
func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "error":
		return logger.Error
	case "warn", "warning":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return logger.Silent
	}
}

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.New(logrus.StandardLogger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,
		}),
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime())

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.WithFields(logrus.Fields{"host": cfg.Host, "database": cfg.Database}).Info("Database connection established")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
		return
	}
	logrus.Info("Database connection closed")
}

// migratedModels lists the tables owned by the link builder. The
// grouped_children join table follows from Product.Children.
func migratedModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Product{},
		&models.ProductAttribute{},
		&models.AttributeTaxonomy{},
		&models.AttributeTerm{},
		&models.Coupon{},
		&models.Page{},
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations")

	if err := db.AutoMigrate(migratedModels()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	createIndexes(db)

	logrus.Info("Database migrations completed")
	return nil
}

// indexStatements back the catalog lookups: case-insensitive name, SKU and
// code search, variation listing by parent and term lookup by taxonomy.
var indexStatements = []string{
	"CREATE INDEX IF NOT EXISTS idx_products_type_status ON products(type, status)",
	"CREATE INDEX IF NOT EXISTS idx_products_name_lower ON products(LOWER(name))",
	"CREATE INDEX IF NOT EXISTS idx_products_sku_lower ON products(LOWER(sku))",
	"CREATE INDEX IF NOT EXISTS idx_products_parent_order ON products(parent_id, menu_order)",
	"CREATE INDEX IF NOT EXISTS idx_product_attributes_position ON product_attributes(product_id, position)",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_attribute_terms_slug ON attribute_terms(taxonomy, slug)",
	"CREATE INDEX IF NOT EXISTS idx_coupons_code_lower ON coupons(LOWER(code))",
	"CREATE INDEX IF NOT EXISTS idx_pages_title_lower ON pages(LOWER(title))",
}

func createIndexes(db *gorm.DB) {
	for _, index := range indexStatements {
		if err := db.Exec(index).Error; err != nil {
			// Continue with other indexes instead of failing completely
			logrus.WithError(err).WithField("statement", index).Warn("Failed to create index")
		}
	}
}

// defaultTaxonomies are created on an empty store so variable products can be
// set up without visiting the attribute screens first.
var defaultTaxonomies = []struct {
	Taxonomy models.AttributeTaxonomy
	Terms    []string
}{
	{models.AttributeTaxonomy{Name: "color", Label: "Color"}, []string{"Red", "Green", "Blue", "Black", "White"}},
	{models.AttributeTaxonomy{Name: "size", Label: "Size"}, []string{"Small", "Medium", "Large"}},
}

// SeedInitialData creates the default taxonomies and the first administrator.
// Both steps are skipped when the rows already exist.
func SeedInitialData(db *gorm.DB, admin config.AdminConfig) error {
	logrus.Info("Seeding initial data")

	if err := WithTransaction(db, seedTaxonomies); err != nil {
		return fmt.Errorf("failed to seed attribute taxonomies: %w", err)
	}

	if err := seedAdmin(db, admin); err != nil {
		return err
	}

	logrus.Info("Initial data seeding completed")
	return nil
}

func seedTaxonomies(tx *gorm.DB) error {
	for _, def := range defaultTaxonomies {
		taxonomy := def.Taxonomy
		err := tx.Where("name = ?", taxonomy.Name).First(&taxonomy).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&taxonomy).Error; err != nil {
			return err
		}
		for _, name := range def.Terms {
			term := models.AttributeTerm{
				Taxonomy: taxonomy.Taxonomy(),
				Name:     name,
				Slug:     attributes.Slugify(name),
			}
			if err := tx.Create(&term).Error; err != nil {
				return err
			}
		}
		logrus.WithField("taxonomy", taxonomy.Taxonomy()).Info("Attribute taxonomy created")
	}
	return nil
}

func seedAdmin(db *gorm.DB, cfg config.AdminConfig) error {
	var adminCount int64
	if err := db.Model(&models.User{}).Where("role = ?", models.UserRoleAdministrator).Count(&adminCount).Error; err != nil {
		return fmt.Errorf("failed to count administrators: %w", err)
	}
	if adminCount > 0 {
		return nil
	}

	password := cfg.Password
	generated := password == ""
	if generated {
		var err error
		if password, err = utils.GenerateRandomString(generatedPasswordLength); err != nil {
			return fmt.Errorf("failed to generate admin password: %w", err)
		}
	}

	admin := &models.User{
		Username: cfg.Username,
		Email:    cfg.Email,
		Role:     models.UserRoleAdministrator,
		Status:   models.UserStatusActive,
	}
	if err := admin.SetPassword(password); err != nil {
		return fmt.Errorf("failed to set admin password: %w", err)
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	entry := logrus.WithField("username", admin.Username)
	if generated {
		entry = entry.WithField("password", password)
	}
	entry.Info("Default administrator created")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
