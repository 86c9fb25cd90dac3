package database

import (
	"strings"

	"gorm.io/gorm"

	"github.com/yeremiapane/pizzeria-app/utils"
)

// EnsureSchemaGuards installs database-level checks that back the
// application invariants: stock columns can never go negative even if a
// write path slips past the ledger.
func EnsureSchemaGuards(db *gorm.DB) error {
	if db.Dialector.Name() != "mysql" {
		// sqlite test databases enforce these in the application layer only.
		return nil
	}

	for _, stmt := range guardStatements() {
		if err := db.Exec(stmt).Error; err != nil {
			// Re-running at startup hits already-installed constraints.
			if strings.Contains(err.Error(), "Duplicate") || strings.Contains(err.Error(), "already exists") {
				continue
			}
			utils.ErrorLogger.Printf("Error installing schema guard: %v\nStatement: %s", err, stmt)
			return err
		}
		utils.InfoLogger.Printf("Schema guard installed: %s", stmt)
	}

	return nil
}

// guardStatements lists the installed checks. The coupon guard must leave
// room for max_uses = 0, which the application treats as unlimited.
func guardStatements() []string {
	return []string{
		"ALTER TABLE products ADD CONSTRAINT chk_products_stock CHECK (stock >= 0)",
		"ALTER TABLE ingredients ADD CONSTRAINT chk_ingredients_stock CHECK (stock >= 0)",
		"ALTER TABLE coupons ADD CONSTRAINT chk_coupons_uses CHECK (max_uses = 0 OR current_uses <= max_uses)",
	}
}
