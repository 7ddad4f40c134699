package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/smartsplit-app/smartsplit-backend/internal/domain/receipt"
)

// Storage provides SQLite database access for bills.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	// Run all pending migrations
	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveBill inserts or updates a bill. CreatedAt is set on first save.
func (s *Storage) SaveBill(bill *BillRecord) error {
	now := time.Now().UTC()
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = now
	}
	bill.UpdatedAt = now

	itemsJSON, err := json.Marshal(bill.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}
	dinersJSON, err := json.Marshal(bill.Diners)
	if err != nil {
		return fmt.Errorf("failed to marshal diners: %w", err)
	}
	assignmentsJSON, err := json.Marshal(bill.Assignments)
	if err != nil {
		return fmt.Errorf("failed to marshal assignments: %w", err)
	}

	r := bill.Receipt()

	query := `
	INSERT OR REPLACE INTO bills
	(id, title, currency, service_rate, items_json, diners_json, assignments_json,
	 total, total_with_service, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.Exec(query,
		bill.ID,
		bill.Title,
		bill.Currency,
		bill.ServiceRate.String(),
		string(itemsJSON),
		string(dinersJSON),
		string(assignmentsJSON),
		r.Total().String(),
		r.TotalWithService().String(),
		bill.CreatedAt,
		bill.UpdatedAt,
	)

	return err
}

// GetBill retrieves a bill by id
func (s *Storage) GetBill(id string) (*BillRecord, error) {
	query := `
	SELECT id, title, currency, service_rate, items_json, diners_json, assignments_json,
	       created_at, updated_at
	FROM bills WHERE id = ?
	`

	row := s.db.QueryRow(query, id)
	bill, err := scanBill(row)
	if err == sql.ErrNoRows {
		return nil, ErrBillNotFound
	}
	return bill, err
}

// ListBills returns bills ordered by creation time, newest first
func (s *Storage) ListBills(limit, offset int) (*BillListResult, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM bills").Scan(&total); err != nil {
		return nil, err
	}

	query := `
	SELECT id, title, currency, service_rate, items_json, diners_json, assignments_json,
	       created_at, updated_at
	FROM bills ORDER BY created_at DESC, id LIMIT ? OFFSET ?
	`
	rows, err := s.db.Query(query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := make([]*BillRecord, 0, limit)
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &BillListResult{
		Bills:      bills,
		TotalCount: total,
		Limit:      limit,
		Offset:     offset,
	}, nil
}

// DeleteBill removes a bill
func (s *Storage) DeleteBill(id string) error {
	result, err := s.db.Exec("DELETE FROM bills WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBillNotFound
	}
	return nil
}

// GetStats returns aggregate statistics across all bills. Totals are
// summed from the cached receipt-level columns in exact decimal.
func (s *Storage) GetStats() (*Stats, error) {
	stats := &Stats{
		GrandTotal:            decimal.Zero,
		GrandTotalWithService: decimal.Zero,
	}

	rows, err := s.db.Query("SELECT items_json, diners_json, total, total_with_service FROM bills")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var itemsJSON, dinersJSON, totalStr, totalWithServiceStr string
		if err := rows.Scan(&itemsJSON, &dinersJSON, &totalStr, &totalWithServiceStr); err != nil {
			return nil, err
		}

		var items []receipt.LineItem
		if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal items: %w", err)
		}
		var diners []receipt.Diner
		if err := json.Unmarshal([]byte(dinersJSON), &diners); err != nil {
			return nil, fmt.Errorf("failed to unmarshal diners: %w", err)
		}

		total, err := decimal.NewFromString(totalStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt total %q: %w", totalStr, err)
		}
		totalWithService, err := decimal.NewFromString(totalWithServiceStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt total %q: %w", totalWithServiceStr, err)
		}

		stats.BillCount++
		stats.ItemCount += len(items)
		stats.DinerCount += len(diners)
		stats.GrandTotal = stats.GrandTotal.Add(total)
		stats.GrandTotalWithService = stats.GrandTotalWithService.Add(totalWithService)
	}

	return stats, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for scanBill
type scanner interface {
	Scan(dest ...any) error
}

func scanBill(row scanner) (*BillRecord, error) {
	bill := &BillRecord{}
	var rateStr, itemsJSON, dinersJSON, assignmentsJSON string

	err := row.Scan(
		&bill.ID,
		&bill.Title,
		&bill.Currency,
		&rateStr,
		&itemsJSON,
		&dinersJSON,
		&assignmentsJSON,
		&bill.CreatedAt,
		&bill.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	bill.ServiceRate, err = decimal.NewFromString(rateStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt service rate %q: %w", rateStr, err)
	}
	if err := json.Unmarshal([]byte(itemsJSON), &bill.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal items: %w", err)
	}
	if err := json.Unmarshal([]byte(dinersJSON), &bill.Diners); err != nil {
		return nil, fmt.Errorf("failed to unmarshal diners: %w", err)
	}
	if err := json.Unmarshal([]byte(assignmentsJSON), &bill.Assignments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assignments: %w", err)
	}
	if bill.Assignments == nil {
		bill.Assignments = receipt.Assignments{}
	}

	return bill, nil
}
