package backoffice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/salesorder/internal/domain/errors"
	"github.com/polkiloo/salesorder/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewHTTPClient(srv.URL+"/api", 0, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func sampleOrder() model.SalesOrder {
	return model.SalesOrder{
		CardCode:   "C001",
		CardName:   "Acme",
		DocDate:    "2024-05-01",
		DocDueDate: "2024-05-01",
		DocTotal:   decimal.RequireFromString("28.5"),
		Rows: []model.SalesOrderRow{
			{ItemCode: "I1", ItemName: "Widget", Price: decimal.RequireFromString("9.5"), Quantity: 3},
		},
	}
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", 0, testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", 0, testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestCustomersAcceptsArrayAndEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "array", body: `[{"CardCode":"C001","CardName":"Acme","EmailAddress":"a@acme.test"}]`, want: 1},
		{name: "envelope", body: `{"value":[{"CardCode":"C001","CardName":"Acme"},{"CardCode":"C002","CardName":"Globex"}]}`, want: 2},
		{name: "envelope without value", body: `{"odata.count":0}`, want: 0},
		{name: "envelope with non array value", body: `{"value":{"CardCode":"C001"}}`, want: 0},
		{name: "empty body", body: ``, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet || r.URL.Path != "/api/Customers/customers" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				_, _ = io.WriteString(w, tt.body)
			})

			customers, err := client.Customers(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(customers) != tt.want {
				t.Fatalf("expected %d customers, got %d", tt.want, len(customers))
			}
			if tt.want > 0 && (customers[0].Code != "C001" || customers[0].Name != "Acme") {
				t.Fatalf("unexpected first customer %+v", customers[0])
			}
		})
	}
}

func TestCustomersMapsEmail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"CardCode":"C001","CardName":"Acme","EmailAddress":"a@acme.test"}]`)
	})

	customers, err := client.Customers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if customers[0].Email != "a@acme.test" {
		t.Fatalf("expected email to be mapped, got %q", customers[0].Email)
	}
}

func TestItemsCoercePrices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/Items/items" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"value":[
			{"ItemCode":"I1","ItemName":"Widget","ItemType":"itItems","Price":9.5},
			{"ItemCode":"I2","ItemName":"Gadget","UnitPrice":"4.25"},
			{"ItemCode":"I3","ItemName":"Bolt","Price":null,"PriceList":2},
			{"ItemCode":"I4","ItemName":"Nut","Price":"n/a"},
			{"ItemCode":"I5"}
		]}`)
	})

	items, err := client.Items(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}

	want := []string{"9.5", "4.25", "2", "0", "0"}
	for i, it := range items {
		if got := it.NominalPrice().String(); got != want[i] {
			t.Errorf("item %s: expected nominal price %s, got %s", it.Code, want[i], got)
		}
	}
	if items[0].Type != "itItems" {
		t.Errorf("expected item type to be mapped, got %q", items[0].Type)
	}
	if items[2].Price.Valid {
		t.Errorf("expected null price to stay invalid")
	}
	if !items[3].Price.Valid {
		t.Errorf("expected non-numeric price to be present")
	}
	if items[4].Price.Valid || items[4].UnitPrice.Valid || items[4].PriceList.Valid {
		t.Errorf("expected absent prices to stay invalid")
	}
}

func TestListRequestFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `[{"CardCode":`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			if _, err := client.Customers(context.Background()); err == nil {
				t.Fatal("expected customers error")
			}
			if _, err := client.Items(context.Background()); err == nil {
				t.Fatal("expected items error")
			}
		})
	}
}

func TestCreateSalesOrderSendsPayload(t *testing.T) {
	var received map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/SalesOrders" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"DocEntry":17,"DocNum":1017}`)
	})

	ack, err := client.CreateSalesOrder(context.Background(), sampleOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ack.DocEntry != 17 || ack.DocNum != 1017 {
		t.Fatalf("unexpected acknowledgement %+v", ack)
	}

	if received["CardCode"] != "C001" || received["CardName"] != "Acme" {
		t.Fatalf("unexpected customer fields %v", received)
	}
	if received["DocDate"] != "2024-05-01" || received["DocDueDate"] != "2024-05-01" {
		t.Fatalf("unexpected dates %v", received)
	}
	if total, ok := received["DocTotal"].(float64); !ok || total != 28.5 {
		t.Fatalf("expected numeric DocTotal 28.5, got %#v", received["DocTotal"])
	}
	rows, ok := received["SalesOrderRow"].([]any)
	if !ok || len(rows) != 1 {
		t.Fatalf("expected one row, got %#v", received["SalesOrderRow"])
	}
	row := rows[0].(map[string]any)
	if row["ItemCode"] != "I1" || row["ItemName"] != "Widget" || row["Price"] != 9.5 || row["Quantity"] != float64(3) {
		t.Fatalf("unexpected row %v", row)
	}
}

func TestCreateSalesOrderRemoteFailures(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantStatus  string
	}{
		{name: "nested message", status: http.StatusInternalServerError, body: `{"error":{"message":{"value":"Stock insufficient"}}}`, wantMessage: "Stock insufficient", wantStatus: "Internal Server Error"},
		{name: "plain message", status: http.StatusBadRequest, body: `{"error":{"message":"Bad card"}}`, wantMessage: "Bad card", wantStatus: "Bad Request"},
		{name: "string error", status: http.StatusBadRequest, body: `{"error":"Locked"}`, wantMessage: "Locked", wantStatus: "Bad Request"},
		{name: "no body", status: http.StatusBadGateway, body: ``, wantStatus: "Bad Gateway"},
		{name: "error on success status", status: http.StatusOK, body: `{"error":{"message":{"value":"Period closed"}}}`, wantMessage: "Period closed", wantStatus: "OK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			ack, err := client.CreateSalesOrder(context.Background(), sampleOrder())
			if ack != nil {
				t.Fatalf("expected no acknowledgement, got %+v", ack)
			}
			var remote *domainErrors.RemoteError
			if !errors.As(err, &remote) {
				t.Fatalf("expected RemoteError, got %v", err)
			}
			if remote.StatusCode != tt.status {
				t.Errorf("expected status code %d, got %d", tt.status, remote.StatusCode)
			}
			if remote.Message != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, remote.Message)
			}
			if remote.Status != tt.wantStatus {
				t.Errorf("expected status %q, got %q", tt.wantStatus, remote.Status)
			}
		})
	}
}

func TestCreateSalesOrderIgnoresFalsyErrorMember(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"error":null,"DocEntry":3,"DocNum":"x"}`)
	})

	ack, err := client.CreateSalesOrder(context.Background(), sampleOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ack.DocEntry != 3 || ack.DocNum != 0 {
		t.Fatalf("unexpected acknowledgement %+v", ack)
	}
}

func TestCreateSalesOrderTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client, err := NewHTTPClient(url, 0, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	_, err = client.CreateSalesOrder(context.Background(), sampleOrder())
	if err == nil {
		t.Fatal("expected transport error")
	}
	var remote *domainErrors.RemoteError
	if errors.As(err, &remote) {
		t.Fatalf("transport error must not be a RemoteError: %v", err)
	}
}

func TestCreateSalesOrderHonoursTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client, err := NewHTTPClient(srv.URL, 50*time.Millisecond, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := client.CreateSalesOrder(context.Background(), sampleOrder()); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestCreateSalesOrderLogsRejections(t *testing.T) {
	called := make(chan struct{}, 1)
	handler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.LevelKey && a.Value.Any() == slog.LevelError {
			select {
			case called <- struct{}{}:
			default:
			}
		}
		return a
	}})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, 0, slog.New(handler))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := client.CreateSalesOrder(context.Background(), sampleOrder()); err == nil {
		t.Fatal("expected error from server")
	}

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("expected error log to be written")
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestCreateSalesOrderLogsTruncatedBody(t *testing.T) {
	var logs bytes.Buffer
	client, err := NewHTTPClient("http://backoffice.test/api", 0, slog.New(slog.NewJSONHandler(&logs, nil)))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	client.httpClient.Transport = roundTripFunc(func(r *http.Request) (*http.Response, error) {
		body := io.MultiReader(strings.NewReader(`{"DocEntry":`), iotest.ErrReader(errors.New("connection reset")))
		return &http.Response{StatusCode: http.StatusCreated, Body: io.NopCloser(body), Header: http.Header{}, Request: r}, nil
	})

	ack, err := client.CreateSalesOrder(context.Background(), sampleOrder())
	if err != nil {
		t.Fatalf("expected success on 2xx, got %v", err)
	}
	if ack == nil || ack.DocEntry != 0 {
		t.Fatalf("unexpected acknowledgement: %+v", ack)
	}

	var record map[string]any
	if err := json.Unmarshal(logs.Bytes(), &record); err != nil {
		t.Fatalf("expected one log record, got %q", logs.String())
	}
	if record["level"] != "WARN" || record["error"] != "connection reset" {
		t.Fatalf("unexpected log record: %v", record)
	}
}

func TestErrorIndicator(t *testing.T) {
	cases := []struct {
		raw         string
		wantMessage string
		wantFlagged bool
	}{
		{raw: ``, wantFlagged: false},
		{raw: `null`, wantFlagged: false},
		{raw: `false`, wantFlagged: false},
		{raw: `""`, wantFlagged: false},
		{raw: `0`, wantFlagged: false},
		{raw: `true`, wantFlagged: true},
		{raw: `42`, wantMessage: "42", wantFlagged: true},
		{raw: `"oops"`, wantMessage: "oops", wantFlagged: true},
		{raw: `{}`, wantFlagged: true},
		{raw: `{"message":{"value":""}}`, wantFlagged: true},
		{raw: `{"message":{"value":"deep"}}`, wantMessage: "deep", wantFlagged: true},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			msg, flagged := errorIndicator(json.RawMessage(tc.raw))
			if msg != tc.wantMessage || flagged != tc.wantFlagged {
				t.Fatalf("errorIndicator(%s) = (%q, %v), want (%q, %v)", tc.raw, msg, flagged, tc.wantMessage, tc.wantFlagged)
			}
		})
	}
}
