package sheetssql

import (
	"context"
	"fmt"
)

// SheetsClient defines the interface for sheets operations
type SheetsClient interface {
	GetValues(ctx context.Context, spreadsheetID, sheetRange string) ([][]interface{}, error)
	AppendRows(ctx context.Context, spreadsheetID, sheetRange string, values [][]interface{}) error
	UpdateValues(ctx context.Context, spreadsheetID, sheetRange string, values [][]interface{}) error
	ClearValues(ctx context.Context, spreadsheetID, sheetRange string) error
	CreateSheet(ctx context.Context, spreadsheetID, sheetTitle string) (int64, error)
	SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error)
}

// Column defines a column with name and type
type Column struct {
	Name string
	Type string // one of the Type* constants
}

// TableSchema defines the structure of a table
type TableSchema struct {
	Name    string
	Columns []Column
}

// Schema defines the database schema
type Schema struct {
	Tables []TableSchema
}

// DB represents a connection to a Google Sheets "database".
// Each table is a tab whose first row holds column names and second row column types.
type DB struct {
	client        SheetsClient
	spreadsheetID string
	schema        *Schema
}

// NewDB creates a new Sheets SQL database connection and ensures schema exists
func NewDB(ctx context.Context, client SheetsClient, spreadsheetID string, schema *Schema) (*DB, error) {
	db := &DB{
		client:        client,
		spreadsheetID: spreadsheetID,
		schema:        schema,
	}

	if err := db.ensureSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return db, nil
}

// SpreadsheetID returns the database spreadsheet ID
func (db *DB) SpreadsheetID() string {
	return db.spreadsheetID
}

// InsertRows appends multiple rows to the specified table
func (db *DB) InsertRows(ctx context.Context, tableName string, rows [][]interface{}) error {
	return db.client.AppendRows(ctx, db.spreadsheetID, tableName, rows)
}

// firstDataRow is the sheet row of a table's first record, below the header and type rows
const firstDataRow = 3

// ClearTable deletes every data row, keeping the header and type rows
func (db *DB) ClearTable(ctx context.Context, tableName string) error {
	return db.client.ClearValues(ctx, db.spreadsheetID, fmt.Sprintf("%s!A%d:ZZ", tableName, firstDataRow))
}
