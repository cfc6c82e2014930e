package inventory_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/markdown-pricer/internal/inventory"
)

const header = "Product_ID,Product_Name,Expiration_Date,Stock_Quantity,Days_To_Expiry,Turnover_Label,Stock_Pressure,Unit_Price,Is_Expired\n"

func TestParseCSV_Valid(t *testing.T) {
	t.Parallel()

	in := header +
		"P-1,Greek Yogurt,2026-10-20,40,3,Slow,2.5,4.50,False\n" +
		"P-2,Sourdough,2026-11-10,12.0,24,fast,0.4,6,false\n" +
		"P-3,Milk 1L,2026-10-10,8,-7,Medium,1.2,1.99,TRUE\n"

	items, err := inventory.ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, items, 3)

	first := items[0]
	assert.Equal(t, "P-1", first.ProductID)
	assert.Equal(t, "Greek Yogurt", first.ProductName)
	require.NotNil(t, first.ExpirationDate)
	assert.Equal(t, "2026-10-20", first.ExpirationDate.Format("2006-01-02"))
	assert.Equal(t, 40, first.StockQuantity)
	assert.InDelta(t, 3.0, first.DaysToExpiry, 1e-9)
	assert.True(t, first.IsSlow())
	assert.InDelta(t, 2.5, first.StockPressure, 1e-9)
	assert.InDelta(t, 4.5, first.UnitPrice, 1e-9)
	assert.False(t, first.IsExpired)

	assert.Equal(t, 12, items[1].StockQuantity)
	assert.True(t, items[2].IsExpired)
	assert.InDelta(t, -7.0, items[2].DaysToExpiry, 1e-9)
}

func TestParseCSV_MinimalColumnsAnyOrder(t *testing.T) {
	t.Parallel()

	in := "unit_price, is_expired, stock_pressure, turnover_label, days_to_expiry\n" +
		"2.00, 0, 0.5, slow, 9\n" +
		"3.00, 1, 1.5, fast, -1\n"

	items, err := inventory.ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "row-2", items[0].ProductID, "missing product id is derived from the line")
	assert.Equal(t, "row-3", items[1].ProductID)
	assert.Nil(t, items[0].ExpirationDate)
	assert.InDelta(t, 9.0, items[0].DaysToExpiry, 1e-9)
	assert.True(t, items[1].IsExpired)
}

func TestParseCSV_ByteOrderMark(t *testing.T) {
	t.Parallel()

	in := "\ufeffDays_To_Expiry,Turnover_Label,Stock_Pressure,Unit_Price,Is_Expired\n5,slow,1,2,false\n"

	items, err := inventory.ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestParseCSV_MalformedRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		row        string
		wantLine   int
		wantColumn string
		wantMsg    string
	}{
		{
			name:       "non-numeric days",
			row:        "P-1,A,2026-10-20,1,soon,slow,1,2,false",
			wantLine:   2,
			wantColumn: "Days_To_Expiry",
			wantMsg:    "not a number",
		},
		{
			name:       "NaN pressure",
			row:        "P-1,A,2026-10-20,1,3,slow,NaN,2,false",
			wantLine:   2,
			wantColumn: "Stock_Pressure",
			wantMsg:    "not a finite number",
		},
		{
			name:       "negative pressure",
			row:        "P-1,A,2026-10-20,1,3,slow,-0.5,2,false",
			wantLine:   2,
			wantColumn: "Stock_Pressure",
			wantMsg:    "gte=0",
		},
		{
			name:       "zero price",
			row:        "P-1,A,2026-10-20,1,3,slow,1,0,false",
			wantLine:   2,
			wantColumn: "Unit_Price",
			wantMsg:    "gt=0",
		},
		{
			name:       "bad boolean",
			row:        "P-1,A,2026-10-20,1,3,slow,1,2,maybe",
			wantLine:   2,
			wantColumn: "Is_Expired",
			wantMsg:    "not a boolean",
		},
		{
			name:       "empty price",
			row:        "P-1,A,2026-10-20,1,3,slow,1,,false",
			wantLine:   2,
			wantColumn: "Unit_Price",
			wantMsg:    "empty",
		},
		{
			name:       "bad date",
			row:        "P-1,A,20th Oct,1,3,slow,1,2,false",
			wantLine:   2,
			wantColumn: "Expiration_Date",
			wantMsg:    "unrecognized date",
		},
		{
			name:       "fractional quantity",
			row:        "P-1,A,2026-10-20,1.5,3,slow,1,2,false",
			wantLine:   2,
			wantColumn: "Stock_Quantity",
			wantMsg:    "whole number",
		},
		{
			name:       "negative quantity",
			row:        "P-1,A,2026-10-20,-4,3,slow,1,2,false",
			wantLine:   2,
			wantColumn: "Stock_Quantity",
			wantMsg:    "gte=0",
		},
		{
			name:     "wrong field count",
			row:      "P-1,A,2026-10-20",
			wantLine: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			items, err := inventory.ParseCSV(strings.NewReader(header + tt.row + "\n"))
			require.Error(t, err)
			assert.Nil(t, items)
			assert.ErrorIs(t, err, inventory.ErrMalformedRow)

			var rowErr *inventory.RowError
			require.True(t, errors.As(err, &rowErr))
			assert.Equal(t, tt.wantLine, rowErr.Line)
			assert.Equal(t, tt.wantColumn, rowErr.Column)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseCSV_RejectsWholeFileOnLaterError(t *testing.T) {
	t.Parallel()

	in := header +
		"P-1,A,2026-10-20,1,3,slow,1,2,false\n" +
		"P-2,B,2026-10-20,1,3,slow,1,2,false\n" +
		"P-3,C,2026-10-20,1,3,slow,1,-2,false\n"

	items, err := inventory.ParseCSV(strings.NewReader(in))
	require.Error(t, err)
	assert.Nil(t, items)

	var rowErr *inventory.RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 4, rowErr.Line)
}

func TestParseCSV_DuplicateProductID(t *testing.T) {
	t.Parallel()

	in := header +
		"P-1,A,2026-10-20,1,3,slow,1,2,false\n" +
		"P-1,B,2026-10-21,1,4,slow,1,2,false\n"

	_, err := inventory.ParseCSV(strings.NewReader(in))
	require.Error(t, err)
	assert.ErrorIs(t, err, inventory.ErrMalformedRow)
	assert.Contains(t, err.Error(), "duplicate product id")
}

func TestParseCSV_FileErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{"empty input", "", inventory.ErrEmpty},
		{"header only", header, inventory.ErrEmpty},
		{"missing required column", "Days_To_Expiry,Turnover_Label,Stock_Pressure,Unit_Price\n1,slow,1,2\n", inventory.ErrMissingColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := inventory.ParseCSV(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
