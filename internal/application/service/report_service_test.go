package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
	"github.com/sangkips/storefront-pos/internal/domain/enum"
	"github.com/sangkips/storefront-pos/internal/infrastructure/repository"
	"github.com/sangkips/storefront-pos/internal/infrastructure/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleSale(id, ts string, subtotal int64, grandTotal *int64) entity.Sale {
	s := entity.Sale{
		ID:            id,
		TimestampISO:  ts,
		InvoiceNumber: "ADG-" + id,
		Subtotal:      decimal.NewFromInt(subtotal),
		Items: []entity.SaleLine{
			{ItemID: "a", Name: "Shirt", Price: decimal.NewFromInt(subtotal), Qty: 1},
		},
		Payment:  entity.Payment{Method: enum.PaymentMethodUPI, Reference: "UTR" + id},
		Customer: entity.Customer{Name: entity.WalkInCustomer},
	}
	if grandTotal != nil {
		s.GrandTotal = decimal.NewNullDecimal(decimal.NewFromInt(*grandTotal))
	}
	return s
}

func TestAggregate_MonthlyTotalsWithLegacyFallback(t *testing.T) {
	ninety := int64(90)
	sales := []entity.Sale{
		sampleSale("3", "2024-02-01T10:00:00.000Z", 40, nil),
		sampleSale("1", "2024-01-05T10:00:00.000Z", 100, &ninety),
		sampleSale("2", "2024-01-20T10:00:00.000Z", 60, nil),
	}

	rows := Aggregate(sales, MonthlyBucket, time.UTC)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01", rows[0].Period)
	assert.Equal(t, 2, rows[0].Orders)
	assert.True(t, decimal.NewFromInt(150).Equal(rows[0].Total), rows[0].Total.String())
	assert.Equal(t, "2024-02", rows[1].Period)
	assert.True(t, decimal.NewFromInt(40).Equal(rows[1].Total))
}

func TestAggregate_DailyAndMonthlyBucketsDiffer(t *testing.T) {
	sales := []entity.Sale{
		sampleSale("3", "2024-02-01T10:00:00.000Z", 40, nil),
		sampleSale("1", "2024-01-05T10:00:00.000Z", 100, nil),
		sampleSale("2", "2024-01-20T10:00:00.000Z", 60, nil),
	}

	monthly := Aggregate(sales, MonthlyBucket, time.UTC)
	daily := Aggregate(sales, DailyBucket, time.UTC)

	require.Len(t, monthly, 2)
	require.Len(t, daily, 3)
	assert.Equal(t, []string{"2024-01", "2024-02"}, []string{monthly[0].Period, monthly[1].Period})
	assert.Equal(t, []string{"2024-01-05", "2024-01-20", "2024-02-01"},
		[]string{daily[0].Period, daily[1].Period, daily[2].Period})
	for _, row := range daily {
		assert.Equal(t, 1, row.Orders)
	}
}

func TestAggregate_UsesLocalTimeZone(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	sales := []entity.Sale{sampleSale("1", "2024-01-31T20:00:00.000Z", 10, nil)}

	assert.Equal(t, "2024-01", Aggregate(sales, MonthlyBucket, time.UTC)[0].Period)
	assert.Equal(t, "2024-02", Aggregate(sales, MonthlyBucket, kolkata)[0].Period)
	assert.Equal(t, "2024-02-01", Aggregate(sales, DailyBucket, kolkata)[0].Period)
}

func TestBucketFor(t *testing.T) {
	_, ok := BucketFor("daily")
	assert.True(t, ok)
	_, ok = BucketFor("")
	assert.True(t, ok)
	_, ok = BucketFor("weekly")
	assert.False(t, ok)
}

func newReportService(t *testing.T, sales ...entity.Sale) *ReportService {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewSaleRepository(store.NewMemoryStore())
	for i := range sales {
		require.NoError(t, repo.Append(ctx, &sales[i]))
	}
	return NewReportService(repo, time.UTC)
}

func TestReportService_ExportCSV(t *testing.T) {
	svc := newReportService(t, sampleSale("1", "2024-01-05T14:30:15.000Z", 550, nil))

	data, err := svc.ExportCSV(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Sale Date,Sale Time,Invoice,Customer Name,Customer Phone,Item,Quantity,Unit Price,Line Total,Payment Method,Reference", lines[0])
	assert.Equal(t, "05 Jan 2024,02:30:15 pm,ADG-1,Walk-in Customer,,Shirt,1,550.00,550.00,UPI,UTR1", lines[1])
}

func TestReportService_ExportXLSX(t *testing.T) {
	svc := newReportService(t,
		sampleSale("1", "2024-01-05T10:00:00.000Z", 100, nil),
		sampleSale("2", "2024-01-06T10:00:00.000Z", 50, nil),
	)

	data, err := svc.ExportXLSX(context.Background())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sales")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Invoice", rows[0][2])

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, []string{"2024-01", "2", "150"}, summary[1])
}
