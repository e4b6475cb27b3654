package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"time"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
	"github.com/sangkips/storefront-pos/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// BucketFunc maps a sale timestamp to its reporting period
type BucketFunc func(t time.Time) string

// MonthlyBucket groups by calendar month, YYYY-MM
func MonthlyBucket(t time.Time) string {
	return t.Format("2006-01")
}

// DailyBucket groups by calendar day, YYYY-MM-DD
func DailyBucket(t time.Time) string {
	return t.Format("2006-01-02")
}

// BucketFor returns the bucket function for a period name
func BucketFor(period string) (BucketFunc, bool) {
	switch period {
	case "", "monthly":
		return MonthlyBucket, true
	case "daily":
		return DailyBucket, true
	default:
		return nil, false
	}
}

// PeriodTotal is one row of the sales report
type PeriodTotal struct {
	Period string          `json:"period"`
	Orders int             `json:"orders"`
	Total  decimal.Decimal `json:"total"`
}

// Aggregate totals sales per bucket in loc, sorted by period. Sales with
// an unreadable timestamp are skipped.
func Aggregate(sales []entity.Sale, bucket BucketFunc, loc *time.Location) []PeriodTotal {
	if loc == nil {
		loc = time.Local
	}
	byPeriod := make(map[string]*PeriodTotal)
	for _, sale := range sales {
		ts, err := sale.Timestamp()
		if err != nil {
			continue
		}
		key := bucket(ts.In(loc))
		row, ok := byPeriod[key]
		if !ok {
			row = &PeriodTotal{Period: key, Total: decimal.Zero}
			byPeriod[key] = row
		}
		row.Orders++
		row.Total = row.Total.Add(sale.Total())
	}

	rows := make([]PeriodTotal, 0, len(byPeriod))
	for _, row := range byPeriod {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Period < rows[j].Period })
	return rows
}

// csvHeader is the column layout of the ledger export
var csvHeader = []string{
	"Sale Date", "Sale Time", "Invoice", "Customer Name", "Customer Phone",
	"Item", "Quantity", "Unit Price", "Line Total", "Payment Method", "Reference",
}

const (
	exportDateLayout = "02 Jan 2006"
	exportTimeLayout = "03:04:05 pm"
)

// ReportService reads the sales ledger for reports and exports
type ReportService struct {
	saleRepo repository.SaleRepository
	loc      *time.Location
}

// NewReportService creates a new report service
func NewReportService(saleRepo repository.SaleRepository, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{saleRepo: saleRepo, loc: loc}
}

// SalesByPeriod aggregates the whole ledger with bucket
func (s *ReportService) SalesByPeriod(ctx context.Context, bucket BucketFunc) ([]PeriodTotal, error) {
	sales, err := s.saleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Aggregate(sales, bucket, s.loc), nil
}

// ExportCSV writes one row per sale line
func (s *ReportService) ExportCSV(ctx context.Context) ([]byte, error) {
	rows, err := s.exportRows(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportXLSX writes the ledger rows to a Sales sheet and the monthly
// totals to a Summary sheet
func (s *ReportService) ExportXLSX(ctx context.Context) ([]byte, error) {
	sales, err := s.saleRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const salesSheet, summarySheet = "Sales", "Summary"
	if err := f.SetSheetName("Sheet1", salesSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}

	for i, row := range s.ledgerRows(sales) {
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(salesSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write sales sheet: %w", err)
		}
	}

	if err := f.SetSheetRow(summarySheet, "A1", &[]interface{}{"Period", "Orders", "Total"}); err != nil {
		return nil, err
	}
	for i, row := range Aggregate(sales, MonthlyBucket, s.loc) {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		total, _ := row.Total.Round(2).Float64()
		if err := f.SetSheetRow(summarySheet, cell, &[]interface{}{row.Period, row.Orders, total}); err != nil {
			return nil, fmt.Errorf("failed to write summary sheet: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ReportService) exportRows(ctx context.Context) ([][]string, error) {
	sales, err := s.saleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.ledgerRows(sales), nil
}

func (s *ReportService) ledgerRows(sales []entity.Sale) [][]string {
	rows := [][]string{csvHeader}
	for _, sale := range sales {
		var date, clock string
		if ts, err := sale.Timestamp(); err == nil {
			local := ts.In(s.loc)
			date = local.Format(exportDateLayout)
			clock = local.Format(exportTimeLayout)
		}
		for _, line := range sale.Items {
			rows = append(rows, []string{
				date,
				clock,
				sale.InvoiceNumber,
				sale.Customer.Name,
				sale.Customer.Phone,
				line.Name,
				fmt.Sprintf("%d", line.Qty),
				line.Price.StringFixed(2),
				line.LineTotal().StringFixed(2),
				sale.Payment.Method.String(),
				sale.Payment.Reference,
			})
		}
	}
	return rows
}
