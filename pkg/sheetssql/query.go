package sheetssql

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
)

// TableName returns the table that rows of type T are stored in
func TableName[T any]() string {
	var model T
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return toSnakeCase(t.Name())
}

// GetTableAs retrieves all rows from a table and maps them to structs of type T
// Skips the first two rows (headers and types)
func GetTableAs[T any](ctx context.Context, db *DB, tableName string) ([]T, error) {
	values, err := db.client.GetValues(ctx, db.spreadsheetID, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to get table %s: %w", tableName, err)
	}

	if len(values) < 3 {
		// Need at least headers, types, and one data row
		return []T{}, nil
	}

	headers := values[0]
	dataRows := values[2:]

	var model T
	t := reflect.TypeOf(model)

	columnIndexes := make(map[string]int)
	for i, header := range headers {
		if headerStr, ok := header.(string); ok {
			columnIndexes[headerStr] = i
		}
	}

	fieldMap := make(map[string]reflect.StructField)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		columnName := field.Tag.Get("ssql_header")
		if columnName != "" {
			fieldMap[columnName] = field
		}
	}

	results := make([]T, 0, len(dataRows))
	for rowIdx, row := range dataRows {
		if isBlankRow(row) {
			continue
		}

		result := reflect.New(t).Elem()

		for columnName, colIdx := range columnIndexes {
			field, ok := fieldMap[columnName]
			if !ok {
				continue
			}

			if colIdx >= len(row) {
				continue
			}

			cellValue := row[colIdx]
			if cellValue == nil {
				continue
			}

			if err := setFieldValue(result.FieldByName(field.Name), cellValue); err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", rowIdx+firstDataRow, columnName, err)
			}
			if cellStr, ok := cellValue.(string); ok {
				if err := checkCell(field.Tag.Get("ssql_type"), cellStr); err != nil {
					return nil, fmt.Errorf("row %d, column %s: %w", rowIdx+firstDataRow, columnName, err)
				}
			}
		}

		results = append(results, result.Interface().(T))
	}

	return results, nil
}

// isBlankRow reports whether every cell of a row is empty
func isBlankRow(row []interface{}) bool {
	for _, cell := range row {
		if str, ok := cell.(string); !ok || str != "" {
			return false
		}
	}
	return true
}

// setFieldValue converts a sheet cell value to the appropriate Go type and sets it on the field
func setFieldValue(field reflect.Value, cellValue interface{}) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	// Sheets API returns formatted values as strings
	cellStr, ok := cellValue.(string)
	if !ok {
		return fmt.Errorf("cell value is not a string")
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(cellStr)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if cellStr == "" {
			field.SetInt(0)
		} else {
			intVal, err := strconv.ParseInt(cellStr, 10, 64)
			if err != nil {
				return fmt.Errorf("failed to parse int: %w", err)
			}
			field.SetInt(intVal)
		}

	case reflect.Float32, reflect.Float64:
		if cellStr == "" {
			field.SetFloat(0)
		} else {
			floatVal, err := strconv.ParseFloat(cellStr, 64)
			if err != nil {
				return fmt.Errorf("failed to parse float: %w", err)
			}
			field.SetFloat(floatVal)
		}

	case reflect.Bool:
		if cellStr == "" {
			field.SetBool(false)
		} else {
			boolVal, err := strconv.ParseBool(cellStr)
			if err != nil {
				return fmt.Errorf("failed to parse bool: %w", err)
			}
			field.SetBool(boolVal)
		}

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// modelRow flattens the tagged fields of a struct into a sheet row
func modelRow(v reflect.Value) []interface{} {
	t := v.Type()
	row := make([]interface{}, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("ssql_header") == "" {
			continue
		}
		row = append(row, v.Field(i).Interface())
	}
	return row
}

// InsertModels appends multiple structs as rows to their corresponding table
func InsertModels[T any](ctx context.Context, db *DB, models []T) error {
	if len(models) == 0 {
		return nil
	}

	rows := make([][]interface{}, 0, len(models))
	for _, model := range models {
		rows = append(rows, modelRow(reflect.ValueOf(model)))
	}

	return db.InsertRows(ctx, TableName[T](), rows)
}

// ReplaceModels overwrites the data rows of T's table with models.
// Sheets has no row-level delete, so updates and deletes rewrite the table.
// The rewrite is a single update starting at the first data row: rows past
// the new length are blanked in the same write, so a failed call leaves the
// table as it was.
func ReplaceModels[T any](ctx context.Context, db *DB, models []T) error {
	tableName := TableName[T]()

	existing, err := db.client.GetValues(ctx, db.spreadsheetID, tableName)
	if err != nil {
		return fmt.Errorf("failed to read table %s: %w", tableName, err)
	}

	var zero T
	width := len(modelRow(reflect.ValueOf(zero)))
	oldRows := 0
	if len(existing) > 0 {
		width = max(width, len(existing[0]))
	}
	if len(existing) > firstDataRow-1 {
		oldRows = len(existing) - (firstDataRow - 1)
	}

	rows := make([][]interface{}, 0, max(len(models), oldRows))
	for _, model := range models {
		rows = append(rows, modelRow(reflect.ValueOf(model)))
	}
	for len(rows) < oldRows {
		rows = append(rows, blankRow(width))
	}
	if len(rows) == 0 {
		return nil
	}

	sheetRange := fmt.Sprintf("%s!A%d", tableName, firstDataRow)
	if err := db.client.UpdateValues(ctx, db.spreadsheetID, sheetRange, rows); err != nil {
		return fmt.Errorf("failed to rewrite table %s: %w", tableName, err)
	}

	return nil
}

func blankRow(width int) []interface{} {
	row := make([]interface{}, width)
	for i := range row {
		row[i] = ""
	}
	return row
}
