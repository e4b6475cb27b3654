package replication

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/storefront-pos/internal/domain/repository"
	"github.com/sangkips/storefront-pos/pkg/apperror"
)

// WebhookSink posts every committed sale to a spreadsheet web app
type WebhookSink struct {
	url    string
	client *http.Client
}

type webhookPayload struct {
	Type string       `json:"type"`
	Sale *entity.Sale `json:"sale"`
}

// NewWebhookSink creates a sink for url. A zero timeout never gives up
// on a slow endpoint.
func NewWebhookSink(url string, timeout time.Duration) *WebhookSink {
	return &WebhookSink{
		url:    strings.TrimSpace(url),
		client: &http.Client{Timeout: timeout},
	}
}

var _ domainRepo.SaleSink = (*WebhookSink)(nil)

func (w *WebhookSink) Name() string {
	return "webhook"
}

// Enabled reports whether the configured URL is an http(s) endpoint
func (w *WebhookSink) Enabled() bool {
	return strings.HasPrefix(w.url, "http")
}

// PushSale sends a single POST and ignores the response. Disabled sinks
// return immediately.
func (w *WebhookSink) PushSale(ctx context.Context, sale *entity.Sale) error {
	if !w.Enabled() {
		return nil
	}

	body, err := json.Marshal(webhookPayload{Type: "sale", Sale: sale})
	if err != nil {
		return &apperror.ReplicationError{Sink: w.Name(), Op: "encode sale", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return &apperror.ReplicationError{Sink: w.Name(), Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := w.client.Do(req)
	if err != nil {
		return &apperror.ReplicationError{Sink: w.Name(), Op: "post sale", Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		log.Printf("[replication] webhook answered %d for invoice %s", resp.StatusCode, sale.InvoiceNumber)
	}
	return nil
}

// String describes the sink for startup logs
func (w *WebhookSink) String() string {
	if !w.Enabled() {
		return "webhook (disabled)"
	}
	return fmt.Sprintf("webhook %s", w.url)
}
