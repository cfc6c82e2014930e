// Package inventory reads perishable stock snapshots from CSV and validates
// them into domain items.
package inventory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

// Sentinel errors for import failures.
var (
	ErrMalformedRow  = errors.New("malformed inventory row")
	ErrMissingColumn = errors.New("missing required column")
	ErrEmpty         = errors.New("inventory file has no rows")
)

// CSV column names.
const (
	ColProductID      = "Product_ID"
	ColProductName    = "Product_Name"
	ColExpirationDate = "Expiration_Date"
	ColStockQuantity  = "Stock_Quantity"
	ColDaysToExpiry   = "Days_To_Expiry"
	ColTurnoverLabel  = "Turnover_Label"
	ColStockPressure  = "Stock_Pressure"
	ColUnitPrice      = "Unit_Price"
	ColIsExpired      = "Is_Expired"
)

// RequiredColumns must be present in every inventory file.
var RequiredColumns = []string{
	ColDaysToExpiry,
	ColTurnoverLabel,
	ColStockPressure,
	ColUnitPrice,
	ColIsExpired,
}

// fieldColumns maps InventoryItem struct fields to their CSV column.
var fieldColumns = map[string]string{
	"ProductID":     ColProductID,
	"ProductName":   ColProductName,
	"StockQuantity": ColStockQuantity,
	"TurnoverLabel": ColTurnoverLabel,
	"StockPressure": ColStockPressure,
	"UnitPrice":     ColUnitPrice,
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
}

// RowError describes a rejected row. It matches ErrMalformedRow with
// errors.Is and also unwraps to the underlying cause.
type RowError struct {
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d, column %s: %v", e.Line, e.Column, e.Err)
}

// Unwrap exposes both ErrMalformedRow and the underlying cause.
func (e *RowError) Unwrap() []error {
	return []error{ErrMalformedRow, e.Err}
}

// Parser converts CSV inventory into validated items.
type Parser struct {
	validate *validator.Validate
}

// NewParser creates a Parser.
func NewParser() *Parser {
	return &Parser{validate: validator.New()}
}

// ParseCSV reads every row with a fresh Parser.
func ParseCSV(r io.Reader) ([]domain.InventoryItem, error) {
	return NewParser().Parse(r)
}

// Parse reads a header row followed by inventory rows. Columns are matched
// by name, case-insensitively, in any order. The first malformed row aborts
// the parse with a *RowError; no partial result is returned.
func (p *Parser) Parse(r io.Reader) ([]domain.InventoryItem, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	cols := mapHeader(header)
	for _, c := range RequiredColumns {
		if _, ok := cols[strings.ToLower(c)]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}

	var items []domain.InventoryItem
	seen := make(map[string]int)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &RowError{Line: pe.Line, Err: pe.Err}
			}
			return nil, fmt.Errorf("reading CSV record: %w", err)
		}

		line, _ := reader.FieldPos(0)

		item, err := p.parseRow(record, cols, line)
		if err != nil {
			return nil, err
		}

		if prev, dup := seen[item.ProductID]; dup {
			return nil, &RowError{
				Line:   line,
				Column: ColProductID,
				Err:    fmt.Errorf("duplicate product id %q (first seen on line %d)", item.ProductID, prev),
			}
		}
		seen[item.ProductID] = line

		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, ErrEmpty
	}
	return items, nil
}

func mapHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

func (p *Parser) parseRow(record []string, cols map[string]int, line int) (domain.InventoryItem, error) {
	get := func(col string) string {
		if idx, ok := cols[strings.ToLower(col)]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	rowErr := func(col string, err error) error {
		return &RowError{Line: line, Column: col, Err: err}
	}

	var item domain.InventoryItem
	var err error

	item.ProductID = get(ColProductID)
	if item.ProductID == "" {
		item.ProductID = fmt.Sprintf("row-%d", line)
	}
	item.ProductName = get(ColProductName)
	item.TurnoverLabel = get(ColTurnoverLabel)

	if item.DaysToExpiry, err = parseFloat(get(ColDaysToExpiry)); err != nil {
		return item, rowErr(ColDaysToExpiry, err)
	}
	if item.StockPressure, err = parseFloat(get(ColStockPressure)); err != nil {
		return item, rowErr(ColStockPressure, err)
	}
	if item.UnitPrice, err = parseFloat(get(ColUnitPrice)); err != nil {
		return item, rowErr(ColUnitPrice, err)
	}
	if item.IsExpired, err = parseBool(get(ColIsExpired)); err != nil {
		return item, rowErr(ColIsExpired, err)
	}

	if v := get(ColStockQuantity); v != "" {
		if item.StockQuantity, err = parseQuantity(v); err != nil {
			return item, rowErr(ColStockQuantity, err)
		}
	}

	if v := get(ColExpirationDate); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return item, rowErr(ColExpirationDate, err)
		}
		item.ExpirationDate = &d
	}

	if err := p.validate.Struct(&item); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return item, rowErr(fieldColumns[fe.StructField()],
				fmt.Errorf("value %v fails %q", fe.Value(), constraint(fe)))
		}
		return item, rowErr("", err)
	}

	return item, nil
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("value is empty")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return f, nil
}

// parseQuantity accepts whole numbers written as floats ("12.0").
func parseQuantity(s string) (int, error) {
	f, err := parseFloat(s)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not a whole number: %q", s)
	}
	return int(f), nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "t", "yes", "y", "1":
		return true, nil
	case "false", "f", "no", "n", "0":
		return false, nil
	case "":
		return false, errors.New("value is empty")
	default:
		return false, fmt.Errorf("not a boolean: %q", s)
	}
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %q", s)
}
