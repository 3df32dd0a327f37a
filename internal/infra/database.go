package infra

import (
	"fmt"

	"github.com/pedroluizchagas/thv/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// AutoMigrate cannot express (sequences, partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Customer{},
		&model.Supplier{},
		&model.QuoteRequest{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Purchase{},
		&model.PurchaseItem{},
		&model.StockMovement{},
		&model.FinancialTransaction{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches creates the DDL objects the models rely on but GORM
// AutoMigrate does not manage. Every statement is idempotent so re-running on
// an already-patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// pgcrypto provides gen_random_uuid() used by every primary key default.
		{"enable pgcrypto", `CREATE EXTENSION IF NOT EXISTS pgcrypto`},

		// Sequential document numbers are taken with nextval() inside the
		// commit transactions; sequences survive rollbacks, so numbering is
		// gap-tolerant but duplicate-free.
		{"create sale number sequence", `CREATE SEQUENCE IF NOT EXISTS sales_sale_number_seq START 1`},
		{"create purchase number sequence", `CREATE SEQUENCE IF NOT EXISTS purchases_purchase_number_seq START 1`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("%s: %w", p.descr, err)
		}
	}
	return nil
}
