package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
	"github.com/sangkips/storefront-pos/internal/domain/repository"
	"github.com/sangkips/storefront-pos/pkg/printer"
	"github.com/shopspring/decimal"
)

// currencySymbol prefixes every amount on a receipt
const currencySymbol = "₹"

// PrinterService builds receipts and sends them to the thermal printer.
type PrinterService struct {
	printer      printer.Printer
	checkout     *CheckoutService
	cartRepo     repository.CartRepository
	draftRepo    repository.DraftRepository
	settingsRepo repository.SettingsRepository
	header       entity.ReceiptHeader
	width        int
	loc          *time.Location
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	checkout *CheckoutService,
	cartRepo repository.CartRepository,
	draftRepo repository.DraftRepository,
	settingsRepo repository.SettingsRepository,
	header entity.ReceiptHeader,
	width int,
	loc *time.Location,
) *PrinterService {
	if loc == nil {
		loc = time.Local
	}
	return &PrinterService{
		printer:      p,
		checkout:     checkout,
		cartRepo:     cartRepo,
		draftRepo:    draftRepo,
		settingsRepo: settingsRepo,
		header:       header,
		width:        width,
		loc:          loc,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printer.Type() != "none",
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printer.Type(),
	}
}

// CurrentReceipt returns the receipt of the last committed sale, or a
// preview of the open cart when nothing has been sold yet.
func (s *PrinterService) CurrentReceipt(ctx context.Context) (*entity.Receipt, error) {
	var receipt *entity.Receipt
	if sale := s.checkout.LastSale(); sale != nil {
		receipt = entity.NewSaleReceipt(s.header, sale, s.loc)
	} else {
		cart, err := s.cartRepo.Load(ctx)
		if err != nil {
			return nil, err
		}
		draft, err := s.draftRepo.Get(ctx)
		if err != nil {
			return nil, err
		}
		receipt = entity.NewPreviewReceipt(s.header, cart, draft, time.Now().In(s.loc))
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	receipt.QRSrc = settings.QRImage()
	return receipt, nil
}

// PrintCurrent prints the current receipt. The receipt is returned even
// when printing fails so the caller can still show it.
func (s *PrinterService) PrintCurrent(ctx context.Context) (*entity.Receipt, error) {
	receipt, err := s.CurrentReceipt(ctx)
	if err != nil {
		return nil, err
	}

	data := FormatReceipt(receipt, s.width)
	if err := s.printer.Print(ctx, data); err != nil {
		log.Printf("[printer] print failed (invoice %s): %v", receipt.InvoiceNo, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Preview {
		doc.Text("** PREVIEW **")
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Invoice:", r.InvoiceNo).
		KeyValue("Date:", r.Date).
		KeyValue("Customer:", r.Customer).
		KeyValue("Phone:", orDash(r.CustomerPhone)).
		KeyValue("Payment:", r.PaymentMethod).
		KeyValue("Ref:", orDash(r.PaymentRef))

	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, money(item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %s each", money(item.UnitPrice))
		}
	}

	doc.Separator('-')

	doc.KeyValue("Subtotal:", money(r.SubTotal))
	if r.Discount.IsPositive() {
		doc.KeyValue("Discount:", "-"+money(r.Discount))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", money(r.Total)).
		SetBold(false)

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you for shopping with us!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

func money(d decimal.Decimal) string {
	return currencySymbol + d.StringFixed(2)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
