package schema

import (
	"database/sql"
	"fmt"
	"strings"
)

// ddl renders the CREATE TABLE and CREATE INDEX statements for one
// table within the given attached schema ("music" or "perfdata").
func ddl(schemaName string, t Table) []string {
	var stmts []string

	var pkCols []string
	for _, c := range t.Columns {
		if c.PKRank > 0 {
			for len(pkCols) < c.PKRank {
				pkCols = append(pkCols, "")
			}
			pkCols[c.PKRank-1] = c.Name
		}
	}

	var cols = make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		var b strings.Builder
		b.WriteString(c.Name)
		b.WriteByte(' ')
		b.WriteString(c.Type)

		if len(pkCols) == 1 && c.PKRank == 1 && c.Type == "INTEGER" {
			b.WriteString(" PRIMARY KEY")
		} else if c.NotNull {
			b.WriteString(" NOT NULL")
		}

		if c.Default != "" {
			b.WriteString(" DEFAULT ")
			b.WriteString(c.Default)
		}

		cols = append(cols, b.String())
	}

	if len(pkCols) > 1 {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pkCols, ", ")))
	}

	stmts = append(stmts, fmt.Sprintf(
		"CREATE TABLE %s.%s (\n    %s\n)",
		schemaName, t.Name, strings.Join(cols, ",\n    ")))

	for _, idx := range t.Indexes {
		var unique string
		if idx.Unique {
			unique = "UNIQUE "
		}
		stmts = append(stmts, fmt.Sprintf(
			"CREATE %sINDEX %s.%s ON %s (%s)",
			unique, schemaName, idx.Name, t.Name, strings.Join(idx.Columns, ", ")))
	}

	return stmts
} // func ddl(schemaName string, t Table) []string

// Create materializes every table and index of tables within the
// given attached schema, in a single transaction.
func Create(db *sql.DB, schemaName string, tables Tables) error {
	logger.Printf("[DEBUG] Create %d tables in schema %s\n", len(tables), schemaName)

	tx, err := db.Begin()
	if err != nil {
		logger.Printf("[ERROR] Cannot begin create transaction for schema %s: %s\n", schemaName, err.Error())
		return fmt.Errorf("schema: begin create transaction: %w", err)
	}

	for _, t := range tables {
		for _, stmt := range ddl(schemaName, t) {
			logger.Printf("[TRACE] %s\n", stmt)
			if _, err = tx.Exec(stmt); err != nil {
				logger.Printf("[ERROR] Cannot create %s.%s: %s\n", schemaName, t.Name, err.Error())
				if rbErr := tx.Rollback(); rbErr != nil {
					logger.Printf("[CANTHAPPEN] Cannot roll back create transaction: %s\n", rbErr.Error())
				}
				return fmt.Errorf("schema: create %s.%s: %w", schemaName, t.Name, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		logger.Printf("[CANTHAPPEN] Cannot commit create transaction for schema %s: %s\n", schemaName, err.Error())
		return fmt.Errorf("schema: commit create transaction: %w", err)
	}

	return nil
} // func Create(db *sql.DB, schemaName string, tables Tables) error
