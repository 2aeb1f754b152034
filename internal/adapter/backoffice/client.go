package backoffice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	domainErrors "github.com/polkiloo/salesorder/internal/domain/errors"
	"github.com/polkiloo/salesorder/internal/domain/model"
)

const (
	customersPath   = "Customers/customers"
	itemsPath       = "Items/items"
	salesOrdersPath = "SalesOrders"
)

// HTTPClient talks to the back office REST API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates a back office client. A zero timeout leaves requests unbounded.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse back office url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("back office url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Customers fetches the full customer list.
func (c *HTTPClient) Customers(ctx context.Context) ([]model.Customer, error) {
	var list []customerResponse
	if err := c.fetchList(ctx, customersPath, &list); err != nil {
		return nil, fmt.Errorf("fetch customers: %w", err)
	}
	out := make([]model.Customer, 0, len(list))
	for _, r := range list {
		out = append(out, r.toModel())
	}
	return out, nil
}

// Items fetches the full item list.
func (c *HTTPClient) Items(ctx context.Context) ([]model.CatalogItem, error) {
	var list []itemResponse
	if err := c.fetchList(ctx, itemsPath, &list); err != nil {
		return nil, fmt.Errorf("fetch items: %w", err)
	}
	out := make([]model.CatalogItem, 0, len(list))
	for _, r := range list {
		out = append(out, r.toModel())
	}
	return out, nil
}

// CreateSalesOrder posts order once. Transport failures are returned wrapped; answers that are not
// successful, or that carry an error indicator, are returned as *errors.RemoteError.
func (c *HTTPClient) CreateSalesOrder(ctx context.Context, order model.SalesOrder) (*model.Acknowledgement, error) {
	payload, err := json.Marshal(newSalesOrderRequest(order))
	if err != nil {
		return nil, fmt.Errorf("encode sales order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(salesOrdersPath), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create sales order: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("sales order response unreadable", slog.Int("status", resp.StatusCode), slog.String("error", err.Error()))
	}
	fields := decodeObject(body)
	message, flagged := errorIndicator(fields["error"])

	if resp.StatusCode < 200 || resp.StatusCode > 299 || flagged {
		c.logger.Error("sales order rejected", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, &domainErrors.RemoteError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Message:    message,
		}
	}

	ack := &model.Acknowledgement{Raw: body}
	_ = json.Unmarshal(fields["DocEntry"], &ack.DocEntry)
	_ = json.Unmarshal(fields["DocNum"], &ack.DocNum)
	return ack, nil
}

func (c *HTTPClient) endpoint(p string) string {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, p)
	return endpoint.String()
}

func (c *HTTPClient) fetchList(ctx context.Context, p string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(p), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("back office list request failed", slog.String("path", p), slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return fmt.Errorf("back office error: %s", resp.Status)
	}
	return decodeList(body, dst)
}
