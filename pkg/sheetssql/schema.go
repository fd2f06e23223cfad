package sheetssql

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"
)

// Column types understood by the store, with the Go kinds each may be read into
const (
	TypeText  = "text"
	TypeUUID  = "uuid"
	TypeDate  = "date"
	TypeFloat = "float"
	TypeInt   = "int"
	TypeBool  = "bool"
)

// DateLayout is the cell format of date columns
const DateLayout = "2006-01-02"

var columnKinds = map[string][]reflect.Kind{
	TypeText:  {reflect.String},
	TypeUUID:  {reflect.String},
	TypeDate:  {reflect.String},
	TypeFloat: {reflect.Float32, reflect.Float64},
	TypeInt:   {reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64},
	TypeBool:  {reflect.Bool},
}

// SchemaFromModels builds one table per struct. Every field needs an
// `ssql_header` column name and an `ssql_type` from the types above that fits
// the field's Go kind.
func SchemaFromModels(models ...interface{}) (*Schema, error) {
	tables := make([]TableSchema, 0, len(models))

	for _, model := range models {
		table, err := tableSchemaFromModel(model)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}

	return &Schema{Tables: tables}, nil
}

// tableSchemaFromModel extracts a TableSchema from a single struct
func tableSchemaFromModel(model interface{}) (TableSchema, error) {
	t := reflect.TypeOf(model)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return TableSchema{}, fmt.Errorf("model must be a struct, got %s", t.Kind())
	}

	columns := make([]Column, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		sheetTag := field.Tag.Get("ssql_header")
		if sheetTag == "" {
			return TableSchema{}, fmt.Errorf("field %s.%s missing 'ssql_header' tag", t.Name(), field.Name)
		}

		typeTag := field.Tag.Get("ssql_type")
		if typeTag == "" {
			return TableSchema{}, fmt.Errorf("field %s.%s missing 'ssql_type' tag", t.Name(), field.Name)
		}

		kinds, known := columnKinds[typeTag]
		if !known {
			return TableSchema{}, fmt.Errorf("field %s.%s has unknown column type '%s'", t.Name(), field.Name, typeTag)
		}
		if !slices.Contains(kinds, field.Type.Kind()) {
			return TableSchema{}, fmt.Errorf("field %s.%s: column type '%s' cannot hold %s", t.Name(), field.Name, typeTag, field.Type.Kind())
		}

		columns = append(columns, Column{
			Name: sheetTag,
			Type: typeTag,
		})
	}

	if len(columns) == 0 {
		return TableSchema{}, fmt.Errorf("struct %s has no fields", t.Name())
	}

	return TableSchema{
		Name:    toSnakeCase(t.Name()),
		Columns: columns,
	}, nil
}

// toSnakeCase converts PascalCase to snake_case
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}

// checkCell validates a non-empty cell against its column type where the Go
// kind alone does not, i.e. dates stored in string fields
func checkCell(colType, cell string) error {
	if colType != TypeDate || cell == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, cell); err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", cell)
	}
	return nil
}

// ensureSchema validates that all tables in the schema exist and match expected structure
// Creates any missing tables
func (db *DB) ensureSchema(ctx context.Context) error {
	existingSheets, err := db.client.SheetTitles(ctx, db.spreadsheetID)
	if err != nil {
		return fmt.Errorf("failed to get existing sheets: %w", err)
	}

	sheetSet := make(map[string]bool)
	for _, sheet := range existingSheets {
		sheetSet[sheet] = true
	}

	for _, table := range db.schema.Tables {
		if sheetSet[table.Name] {
			if err := db.verifyTableSchema(ctx, table); err != nil {
				return fmt.Errorf("table %s schema mismatch: %w", table.Name, err)
			}
		} else {
			if err := db.createTable(ctx, table); err != nil {
				return fmt.Errorf("failed to create table %s: %w", table.Name, err)
			}
		}
	}

	return nil
}

// verifyTableSchema checks that a table's header and type rows match the schema
func (db *DB) verifyTableSchema(ctx context.Context, table TableSchema) error {
	values, err := db.client.GetValues(ctx, db.spreadsheetID, fmt.Sprintf("%s!A1:ZZ2", table.Name))
	if err != nil {
		return fmt.Errorf("failed to read table headers: %w", err)
	}

	if len(values) < 2 {
		return fmt.Errorf("table missing header or type row")
	}

	headers := values[0]
	types := values[1]

	if len(headers) != len(table.Columns) {
		return fmt.Errorf("expected %d columns, found %d", len(table.Columns), len(headers))
	}

	for i, col := range table.Columns {
		headerStr, ok := headers[i].(string)
		if !ok || headerStr != col.Name {
			return fmt.Errorf("column %d: expected header '%s', got '%v'", i, col.Name, headers[i])
		}

		if i >= len(types) {
			return fmt.Errorf("missing type for column %s", col.Name)
		}

		typeStr, ok := types[i].(string)
		if !ok || typeStr != col.Type {
			return fmt.Errorf("column %d (%s): expected type '%s', got '%v'", i, col.Name, col.Type, types[i])
		}
	}

	return nil
}

// createTable creates a new sheet with header and type rows
func (db *DB) createTable(ctx context.Context, table TableSchema) error {
	if _, err := db.client.CreateSheet(ctx, db.spreadsheetID, table.Name); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := make([]interface{}, len(table.Columns))
	types := make([]interface{}, len(table.Columns))

	for i, col := range table.Columns {
		headers[i] = col.Name
		types[i] = col.Type
	}

	rows := [][]interface{}{headers, types}
	if err := db.client.AppendRows(ctx, db.spreadsheetID, table.Name, rows); err != nil {
		return fmt.Errorf("failed to write headers and types: %w", err)
	}

	return nil
}
