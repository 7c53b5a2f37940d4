package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-05"`), &d))
	assert.Equal(t, NewDate(2024, time.March, 5), d)

	require.NoError(t, json.Unmarshal([]byte(`"2024-03-05T18:30:00Z"`), &d))
	assert.Equal(t, "2024-03-05", d.String())

	out, err := json.Marshal(NewDate(2023, time.December, 31))
	require.NoError(t, err)
	assert.Equal(t, `"2023-12-31"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`"05/03/2024"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20240305`), &d))
}

func TestDateNull(t *testing.T) {
	var p Pawn
	require.NoError(t, json.Unmarshal([]byte(`{"return_date":null,"pawn_date":"2024-01-02"}`), &p))
	assert.Nil(t, p.ReturnDate)
	assert.Equal(t, "2024-01-02", p.PawnDate.String())

	out, err := json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestDateScanAndValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 2, 29, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, "2024-02-29", d.String())

	require.NoError(t, d.Scan([]byte("2024-06-01T00:00:00Z")))
	assert.Equal(t, "2024-06-01", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))

	v, err := NewDate(2024, time.June, 1).Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestDecimalAsJSONNumber(t *testing.T) {
	item := SaleItem{
		InvoiceSaleID: 1,
		LineItemID:    "A",
		Quantity:      2,
		Price:         decimal.RequireFromString("10.50"),
		SubTotal:      decimal.RequireFromString("21.00"),
		ProductID:     "P1",
	}
	out, err := json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"invoice_sale_id":1,"line_item_id":"A","quantity":2,"price":10.5,"sub_total":21,"product_id":"P1"}`,
		string(out))
}

func TestPawnListingFlattens(t *testing.T) {
	listing := PawnListing{
		Pawn:         Pawn{PawnID: 3, Status: string(PawnStatusActive), CtrID: 1, EpeID: 2},
		CustomerName: "Ana Ruiz",
		EmployeeName: "Luis Soto",
	}
	out, err := json.Marshal(listing)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(out, &fields))
	assert.Equal(t, float64(3), fields["pawn_id"])
	assert.Equal(t, "Ana Ruiz", fields["customer_name"])
	assert.Equal(t, "Luis Soto", fields["employee_name"])
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to PawnStatus
		want     bool
	}{
		{PawnStatusActive, PawnStatusPaid, true},
		{PawnStatusActive, PawnStatusExpired, true},
		{PawnStatusActive, PawnStatusLiquidated, true},
		{PawnStatusActive, PawnStatusActive, true},
		{PawnStatusPaid, PawnStatusPaid, true},
		{PawnStatusPaid, PawnStatusActive, false},
		{PawnStatusExpired, PawnStatusLiquidated, false},
		{PawnStatusLiquidated, PawnStatusActive, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestPawnStatusValid(t *testing.T) {
	for _, s := range PawnStatuses() {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, PawnStatus("ACTIVE").Valid())
	assert.False(t, PawnStatus("").Valid())
}

func TestAggregateFor(t *testing.T) {
	assert.Equal(t, AggregateSaleInvoice, AggregateFor(EventTypeSaleItemsCommitted))
	assert.Equal(t, AggregatePurchaseInvoice, AggregateFor(EventTypePurchaseItemsCommitted))
	assert.Equal(t, AggregatePawn, AggregateFor(EventTypePawnStatusChanged))
	assert.Empty(t, AggregateFor("ORDER_CREATED"))
}

func TestNumericIDAcceptsNumbersAndStrings(t *testing.T) {
	tests := []struct {
		in   string
		want NumericID
	}{
		{`3`, 3},
		{`"3"`, 3},
		{`" 12 "`, 12},
		{`""`, 0},
		{`null`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var body struct {
				ID NumericID `json:"id"`
			}
			require.NoError(t, json.Unmarshal([]byte(`{"id":`+tt.in+`}`), &body))
			assert.Equal(t, tt.want, body.ID)
		})
	}
}

func TestNumericIDRejectsNonIntegers(t *testing.T) {
	for _, in := range []string{`"abc"`, `1.5`, `"1.5"`, `true`} {
		var id NumericID
		assert.Error(t, json.Unmarshal([]byte(in), &id), in)
	}
}
