package models

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/*
Column Mismatch Report Usage:

Set GENERATE_COLUMN_REPORT=true and start the server. Instead of serving, it prints,
for every table backing a model, the database columns that no model field maps to.
Columns left behind by renamed or dropped fields show up here, since AutoMigrate
never drops columns.
*/

// All lists every persisted model in dependency order.
func All() []any {
	return []any{
		&User{},
		&Project{},
		&ProjectUser{},
		&PendingProjectUser{},
		&Resource{},
		&ProjectImage{},
		&ProjectTag{},
		&Vote{},
		&VotingStatus{},
	}
}

// Migrate creates or alters the schema for all models and seeds the closed voting window.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := binaryCollation(db); err != nil {
		return err
	}

	status := ClosedVotingStatus()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&status).Error; err != nil {
		return fmt.Errorf("seed voting status: %w", err)
	}
	return nil
}

// caseSensitiveColumns hold GitHub logins, which are matched exactly.
var caseSensitiveColumns = []struct {
	model  any
	column string
}{
	{&User{}, "github_username"},
	{&PendingProjectUser{}, "github_username"},
}

// binaryCollation switches GitHub login columns to a binary collation on MySQL,
// whose default collation compares case-insensitively.
func binaryCollation(db *gorm.DB) error {
	if db.Dialector.Name() != "mysql" {
		return nil
	}
	for _, c := range caseSensitiveColumns {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(c.model); err != nil {
			return fmt.Errorf("parse model %T: %w", c.model, err)
		}
		sql := fmt.Sprintf("ALTER TABLE `%s` MODIFY `%s` varchar(255) NOT NULL COLLATE utf8mb4_bin", stmt.Schema.Table, c.column)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("set binary collation on %s.%s: %w", stmt.Schema.Table, c.column, err)
		}
	}
	return nil
}

// ColumnMismatch lists the columns of one table that no model field accounts for.
type ColumnMismatch struct {
	Table   string
	Columns []string
}

// ColumnMismatchReport compares live table columns with model fields.
func ColumnMismatchReport(db *gorm.DB) ([]ColumnMismatch, error) {
	var report []ColumnMismatch
	for _, model := range All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table

		if !db.Migrator().HasTable(model) {
			log.Info().Str("table", table).Msg("table does not exist yet (will be created during migration)")
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("columns for table %s: %w", table, err)
		}

		modelFields := make(map[string]bool, len(stmt.Schema.DBNames))
		for _, name := range stmt.Schema.DBNames {
			modelFields[name] = true
		}

		var missing []string
		for _, col := range columnTypes {
			if !modelFields[col.Name()] {
				missing = append(missing, col.Name())
			}
		}
		sort.Strings(missing)
		report = append(report, ColumnMismatch{Table: table, Columns: missing})
	}
	return report, nil
}

// LogColumnMismatchReport writes the report through the global logger.
func LogColumnMismatchReport(db *gorm.DB) error {
	report, err := ColumnMismatchReport(db)
	if err != nil {
		return err
	}

	total := 0
	for _, entry := range report {
		if len(entry.Columns) == 0 {
			log.Info().Str("table", entry.Table).Msg("all columns are accounted for in the model")
			continue
		}
		total += len(entry.Columns)
		log.Warn().Str("table", entry.Table).Strs("columns", entry.Columns).Msg("columns not accounted for in model")
	}
	log.Info().Int("total", total).Msg("column mismatch report complete")
	return nil
}
