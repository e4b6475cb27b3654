package replication

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/sangkips/storefront-pos/internal/config"
	"github.com/sangkips/storefront-pos/internal/domain/entity"
	"github.com/sangkips/storefront-pos/internal/domain/enum"
	domainRepo "github.com/sangkips/storefront-pos/internal/domain/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	itemsCollection    = "items"
	settingsCollection = "settings"
	salesCollection    = "sales"
	settingsDocID      = "store"
)

var firestoreScopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/datastore",
}

// FirestoreStore mirrors the catalog, settings and ledger into Cloud Firestore
type FirestoreStore struct {
	client  *firestore.Client
	timeout time.Duration
}

var _ domainRepo.DocumentStore = (*FirestoreStore)(nil)

type itemDoc struct {
	Name     string  `firestore:"name"`
	Category string  `firestore:"category"`
	Price    float64 `firestore:"price"`
	Stock    *int64  `firestore:"stock,omitempty"`
	ImageSrc string  `firestore:"imageSrc,omitempty"`
}

type settingsDoc struct {
	QRSrc string `firestore:"qrSrc"`
}

type saleLineDoc struct {
	ItemID      string  `firestore:"itemId"`
	Name        string  `firestore:"name"`
	Price       float64 `firestore:"price"`
	Qty         int64   `firestore:"qty"`
	StockBefore *int64  `firestore:"stockBefore"`
	StockAfter  *int64  `firestore:"stockAfter"`
}

type saleDoc struct {
	TimestampISO  string            `firestore:"timestampISO"`
	InvoiceNumber string            `firestore:"invoiceNumber"`
	Items         []saleLineDoc     `firestore:"items"`
	Subtotal      float64           `firestore:"subtotal"`
	Discount      float64           `firestore:"discount"`
	GrandTotal    float64           `firestore:"grandTotal"`
	Payment       map[string]string `firestore:"payment"`
	Customer      map[string]string `firestore:"customer"`
	CreatedAt     time.Time         `firestore:"createdAt,serverTimestamp"`
}

// NewFirestoreStore initialises a firebase app and its Firestore client.
// Inline JSON credentials take precedence over a credentials file; with
// neither, application default credentials are used.
func NewFirestoreStore(ctx context.Context, cfg *config.FirestoreConfig) (*FirestoreStore, error) {
	var opts []option.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		creds, err := google.CredentialsFromJSON(ctx, []byte(cfg.CredentialsJSON), firestoreScopes...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse firestore credentials: %w", err)
		}
		opts = append(opts, option.WithCredentials(creds))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	log.Printf("[replication] firestore mirror enabled for project %s", cfg.ProjectID)
	return &FirestoreStore{client: client, timeout: cfg.Timeout}, nil
}

// Close releases the Firestore client
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func (s *FirestoreStore) Name() string { return "firestore" }

func (s *FirestoreStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *FirestoreStore) ListItems(ctx context.Context) ([]entity.CatalogItem, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	iter := s.client.Collection(itemsCollection).Documents(ctx)
	defer iter.Stop()

	var items []entity.CatalogItem
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list items: %w", err)
		}
		item, err := itemFromSnapshot(snap)
		if err != nil {
			log.Printf("[replication] skipping item %s: %v", snap.Ref.ID, err)
			continue
		}
		items = append(items, *item)
	}
	return items, nil
}

func (s *FirestoreStore) GetItem(ctx context.Context, id string) (*entity.CatalogItem, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	snap, err := s.client.Collection(itemsCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item %s: %w", id, err)
	}
	return itemFromSnapshot(snap)
}

func (s *FirestoreStore) PutItem(ctx context.Context, item *entity.CatalogItem) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.client.Collection(itemsCollection).Doc(item.ID).Set(ctx, itemToDoc(item))
	if err != nil {
		return fmt.Errorf("failed to put item %s: %w", item.ID, err)
	}
	return nil
}

func (s *FirestoreStore) DeleteItem(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.client.Collection(itemsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete item %s: %w", id, err)
	}
	return nil
}

// UpdateItemStock touches only the stock field of an existing document
func (s *FirestoreStore) UpdateItemStock(ctx context.Context, id string, stock int) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.client.Collection(itemsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "stock", Value: int64(stock)},
	})
	if err != nil {
		return fmt.Errorf("failed to update stock of %s: %w", id, err)
	}
	return nil
}

func (s *FirestoreStore) GetSettings(ctx context.Context) (*entity.Settings, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	snap, err := s.client.Collection(settingsCollection).Doc(settingsDocID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	var doc settingsDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return &entity.Settings{QRSrc: doc.QRSrc}, nil
}

func (s *FirestoreStore) PutSettings(ctx context.Context, settings entity.Settings) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.client.Collection(settingsCollection).Doc(settingsDocID).Set(ctx, settingsDoc{QRSrc: settings.QRSrc})
	if err != nil {
		return fmt.Errorf("failed to put settings: %w", err)
	}
	return nil
}

// AppendSale writes the sale under its own id so a repeated push
// overwrites rather than duplicates
func (s *FirestoreStore) AppendSale(ctx context.Context, sale *entity.Sale) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.client.Collection(salesCollection).Doc(sale.ID).Set(ctx, saleToDoc(sale))
	if err != nil {
		return fmt.Errorf("failed to append sale %s: %w", sale.InvoiceNumber, err)
	}
	return nil
}

func itemToDoc(item *entity.CatalogItem) itemDoc {
	doc := itemDoc{
		Name:     item.Name,
		Category: item.Category.String(),
		Price:    item.Price.InexactFloat64(),
		ImageSrc: item.ImageSrc,
	}
	if stock, ok := item.StockValue(); ok {
		doc.Stock = int64Ptr(stock)
	}
	return doc
}

func itemFromSnapshot(snap *firestore.DocumentSnapshot) (*entity.CatalogItem, error) {
	var doc itemDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode item: %w", err)
	}
	category, err := enum.ParseCategory(doc.Category)
	if err != nil {
		return nil, err
	}
	item := &entity.CatalogItem{
		ID:       snap.Ref.ID,
		Name:     doc.Name,
		Category: category,
		Price:    decimal.NewFromFloat(doc.Price),
		ImageSrc: doc.ImageSrc,
	}
	if doc.Stock != nil {
		item.Stock = entity.IntPtr(int(*doc.Stock))
	}
	return item, nil
}

func saleToDoc(sale *entity.Sale) saleDoc {
	doc := saleDoc{
		TimestampISO:  sale.TimestampISO,
		InvoiceNumber: sale.InvoiceNumber,
		Subtotal:      sale.Subtotal.InexactFloat64(),
		Discount:      sale.Discount.InexactFloat64(),
		GrandTotal:    sale.Total().InexactFloat64(),
		Payment: map[string]string{
			"method":    sale.Payment.Method.String(),
			"reference": sale.Payment.Reference,
		},
		Customer: map[string]string{
			"name":  sale.Customer.Name,
			"phone": sale.Customer.Phone,
		},
	}
	for _, l := range sale.Items {
		line := saleLineDoc{
			ItemID: l.ItemID,
			Name:   l.Name,
			Price:  l.Price.InexactFloat64(),
			Qty:    int64(l.Qty),
		}
		if l.StockBefore != nil {
			line.StockBefore = int64Ptr(*l.StockBefore)
		}
		if l.StockAfter != nil {
			line.StockAfter = int64Ptr(*l.StockAfter)
		}
		doc.Items = append(doc.Items, line)
	}
	return doc
}

func int64Ptr(n int) *int64 {
	v := int64(n)
	return &v
}
