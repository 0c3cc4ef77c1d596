package stripe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateConfig(t *testing.T) {
	cfg := &Config{
		SecretKey:  "sk_test_123",
		SuccessURL: "https://example.com/checkout/success",
		CancelURL:  "https://example.com/checkout/cancel",
	}
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("validate config failed: %v", err)
	}

	cfg.SecretKey = ""
	if err := ValidateConfig(cfg); err == nil {
		t.Fatalf("expected error for missing secret key")
	}
}

func TestNormalizeItems(t *testing.T) {
	items, err := NormalizeItems([]LineItem{
		{Name: "  Mechanical Keyboard  ", UnitPrice: decimal.NewFromInt(1290000), Quantity: 1},
		{Name: "", UnitPrice: decimal.NewFromInt(50000), Quantity: 2},
	})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if items[0].Name != "Mechanical Keyboard" {
		t.Fatalf("unexpected name: %q", items[0].Name)
	}
	if items[1].Name != DefaultItemName {
		t.Fatalf("blank name want %q got %q", DefaultItemName, items[1].Name)
	}
}

func TestNormalizeItemsRejectsInvalid(t *testing.T) {
	if _, err := NormalizeItems(nil); err == nil {
		t.Fatalf("expected error for empty items")
	}
	if _, err := NormalizeItems([]LineItem{{Name: "X", UnitPrice: decimal.NewFromInt(100), Quantity: 0}}); err == nil {
		t.Fatalf("expected error for zero quantity")
	}
	if _, err := NormalizeItems([]LineItem{{Name: "X", UnitPrice: decimal.Zero, Quantity: 1}}); err == nil {
		t.Fatalf("expected error for non-positive price")
	}
}

func TestToMinorAmountZeroDecimalCurrency(t *testing.T) {
	minor, err := toMinorAmount(decimal.NewFromInt(1290000), "VND")
	if err != nil {
		t.Fatalf("vnd minor amount failed: %v", err)
	}
	if minor != 1290000 {
		t.Fatalf("vnd minor want 1290000 got %d", minor)
	}

	minor, err = toMinorAmount(decimal.NewFromFloat(12.88), "USD")
	if err != nil {
		t.Fatalf("usd minor amount failed: %v", err)
	}
	if minor != 1288 {
		t.Fatalf("usd minor want 1288 got %d", minor)
	}
}

func TestCreateCheckoutSession(t *testing.T) {
	var gotForm url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form failed: %v", err)
		}
		gotForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_123","url":"https://checkout.stripe.com/pay/cs_test_123","status":"open"}`))
	}))
	defer server.Close()

	cfg := &Config{
		SecretKey:  "sk_test_123",
		SuccessURL: "https://example.com/checkout/success",
		CancelURL:  "https://example.com/checkout/cancel",
		APIBaseURL: server.URL,
	}
	result, err := CreateCheckoutSession(context.Background(), cfg, SessionInput{
		OrderRef: "TG20260101000000123456",
		Currency: "VND",
		Items: []LineItem{
			{Name: "Gaming Mouse", UnitPrice: decimal.NewFromInt(590000), Quantity: 2},
		},
		ShippingFee: decimal.NewFromInt(50000),
	})
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	if result.SessionID != "cs_test_123" {
		t.Fatalf("unexpected session id: %s", result.SessionID)
	}
	if result.URL != "https://checkout.stripe.com/pay/cs_test_123" {
		t.Fatalf("unexpected url: %s", result.URL)
	}

	if got := gotForm.Get("client_reference_id"); got != "TG20260101000000123456" {
		t.Fatalf("unexpected client_reference_id: %s", got)
	}
	if got := gotForm.Get("line_items[0][price_data][unit_amount]"); got != "590000" {
		t.Fatalf("unexpected unit amount: %s", got)
	}
	if got := gotForm.Get("line_items[1][price_data][product_data][name]"); got != "Express shipping" {
		t.Fatalf("unexpected shipping line name: %s", got)
	}
	if got := gotForm.Get("line_items[1][price_data][unit_amount]"); got != "50000" {
		t.Fatalf("unexpected shipping amount: %s", got)
	}
}

func TestCreateCheckoutSessionRejectsBadResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"message":"card declined"}}`))
	}))
	defer server.Close()

	cfg := &Config{
		SecretKey:  "sk_test_123",
		SuccessURL: "https://example.com/checkout/success",
		CancelURL:  "https://example.com/checkout/cancel",
		APIBaseURL: server.URL,
	}
	_, err := CreateCheckoutSession(context.Background(), cfg, SessionInput{
		Currency: "VND",
		Items:    []LineItem{{Name: "X", UnitPrice: decimal.NewFromInt(1000), Quantity: 1}},
	})
	if err == nil {
		t.Fatalf("expected error for non-2xx response")
	}
}
