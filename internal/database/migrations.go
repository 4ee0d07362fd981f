package database

import (
	"fmt"

	"gorm.io/gorm/schema"

	"github.com/simplereplay/replay/internal/models"
)

// Schema names a set of tables that live in one database file
type Schema string

const (
	// SchemaDocuments is the document service database
	SchemaDocuments Schema = "documents"
	// SchemaMembership is the local record of owned and shared projects
	SchemaMembership Schema = "membership"
)

// Models returns the models migrated for a schema
func (s Schema) Models() ([]any, error) {
	switch s {
	case SchemaDocuments:
		return []any{&models.ProjectRecord{}}, nil
	case SchemaMembership:
		return []any{&models.LocalProject{}}, nil
	}
	return nil, fmt.Errorf("unknown schema %q", s)
}

// TableStatus reports whether a model's table exists
type TableStatus struct {
	Table   string
	Present bool
}

// Migrate creates or updates every table of the schema
func (db *DB) Migrate(s Schema) error {
	ms, err := s.Models()
	if err != nil {
		return err
	}
	return db.AutoMigrate(ms...)
}

// Drop removes every table of the schema. Stored data is lost.
func (db *DB) Drop(s Schema) error {
	ms, err := s.Models()
	if err != nil {
		return err
	}
	return db.Migrator().DropTable(ms...)
}

// Status lists the tables of the schema and whether they exist yet
func (db *DB) Status(s Schema) ([]TableStatus, error) {
	ms, err := s.Models()
	if err != nil {
		return nil, err
	}

	out := make([]TableStatus, 0, len(ms))
	for _, m := range ms {
		name := tableName(m)
		out = append(out, TableStatus{Table: name, Present: db.Migrator().HasTable(m)})
	}
	return out, nil
}

func tableName(m any) string {
	if t, ok := m.(schema.Tabler); ok {
		return t.TableName()
	}
	return fmt.Sprintf("%T", m)
}
