package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
	"github.com/sangkips/storefront-pos/pkg/printer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPrinter struct {
	data []byte
	err  error
}

func (p *recordingPrinter) Print(_ context.Context, data []byte) error {
	p.data = append([]byte(nil), data...)
	return p.err
}

func (p *recordingPrinter) IsConnected(context.Context) bool { return p.err == nil }

func (p *recordingPrinter) Type() string { return "network" }

func newPrinterService(r *rig, p printer.Printer) *PrinterService {
	header := entity.ReceiptHeader{StoreName: "Adaa Garments", Phone: "+91 90000 00000"}
	return NewPrinterService(p, r.checkout, r.cart, r.draft, r.settings, header, printer.Width58mm, time.UTC)
}

func TestPrinterService_PreviewBeforeFirstSale(t *testing.T) {
	ctx := context.Background()
	r := newRig(t, "")
	r.stock(t, item("a", "Shirt", 550, nil))
	_, err := r.cartSvc.AddItem(ctx, "a")
	require.NoError(t, err)

	svc := newPrinterService(r, printer.NewNullPrinter())
	receipt, err := svc.CurrentReceipt(ctx)
	require.NoError(t, err)
	assert.True(t, receipt.Preview)
	assert.Equal(t, "-", receipt.InvoiceNo)
	assert.Equal(t, entity.DefaultQRDataURL, receipt.QRSrc)
	assert.True(t, decimal.NewFromInt(550).Equal(receipt.Total))
}

func TestPrinterService_PrintsLastSale(t *testing.T) {
	ctx := signedIn()
	r := newRig(t, "")
	r.stock(t, item("a", "Shirt", 550, nil))
	_, err := r.cartSvc.AddItem(ctx, "a")
	require.NoError(t, err)
	sale, err := r.checkout.Checkout(ctx, nil)
	require.NoError(t, err)

	p := &recordingPrinter{}
	receipt, err := newPrinterService(r, p).PrintCurrent(ctx)
	require.NoError(t, err)
	assert.False(t, receipt.Preview)
	assert.Equal(t, sale.InvoiceNumber, receipt.InvoiceNo)
	assert.True(t, bytes.Contains(p.data, []byte(sale.InvoiceNumber)))
	assert.True(t, bytes.Contains(p.data, []byte("₹550.00")))
}

func TestPrinterService_ReturnsReceiptWhenPrintFails(t *testing.T) {
	ctx := context.Background()
	r := newRig(t, "")
	p := &recordingPrinter{err: errors.New("paper out")}

	receipt, err := newPrinterService(r, p).PrintCurrent(ctx)
	require.Error(t, err)
	require.NotNil(t, receipt)

	status := newPrinterService(r, p).GetStatus(ctx)
	assert.True(t, status.Configured)
	assert.False(t, status.Connected)
}

func TestFormatReceipt_DashesForMissingFields(t *testing.T) {
	data := FormatReceipt(&entity.Receipt{
		Header:        entity.ReceiptHeader{StoreName: "Shop"},
		InvoiceNo:     "ADG-1",
		Customer:      entity.WalkInCustomer,
		PaymentMethod: "Cash",
		Items:         []entity.ReceiptItem{{Name: "Shirt", Quantity: 2, UnitPrice: decimal.NewFromInt(10), Total: decimal.NewFromInt(20)}},
		SubTotal:      decimal.NewFromInt(20),
		Discount:      decimal.NewFromInt(5),
		Total:         decimal.NewFromInt(15),
	}, printer.Width58mm)

	assert.True(t, bytes.Contains(data, []byte("Phone:")))
	assert.True(t, bytes.Contains(data, []byte("-₹5.00")))
	assert.True(t, bytes.Contains(data, []byte("@ ₹10.00 each")))
}
