package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrConfigInvalid   = errors.New("stripe config invalid")
	ErrLineItemInvalid = errors.New("stripe line item invalid")
	ErrRequestFailed   = errors.New("stripe request failed")
	ErrResponseInvalid = errors.New("stripe response invalid")
)

const (
	defaultAPIBaseURL = "https://api.stripe.com"
	defaultTimeout    = 12 * time.Second

	// DefaultItemName replaces a missing product name on a line item.
	DefaultItemName = "Unnamed product"
)

// Currencies whose minor unit equals the major unit. Amounts in these are
// sent to Stripe as-is rather than multiplied by 100.
var zeroDecimalCurrencies = map[string]struct{}{
	"BIF": {},
	"CLP": {},
	"DJF": {},
	"GNF": {},
	"JPY": {},
	"KMF": {},
	"KRW": {},
	"MGA": {},
	"PYG": {},
	"RWF": {},
	"UGX": {},
	"VND": {},
	"VUV": {},
	"XAF": {},
	"XOF": {},
	"XPF": {},
}

// Config holds the checkout session settings.
type Config struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
	APIBaseURL string
	Timeout    time.Duration
}

// LineItem is one product line in a checkout session.
type LineItem struct {
	Name      string
	Image     string
	UnitPrice decimal.Decimal
	Quantity  int
}

// SessionInput is the checkout session creation payload.
type SessionInput struct {
	OrderRef    string
	Currency    string
	Items       []LineItem
	ShippingFee decimal.Decimal
	SuccessURL  string
	CancelURL   string
}

// SessionResult is the created session.
type SessionResult struct {
	SessionID string
	URL       string
	Status    string
	Raw       map[string]interface{}
}

// ValidateConfig checks required settings.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return fmt.Errorf("%w: secret_key is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.SuccessURL) == "" {
		return fmt.Errorf("%w: success_url is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.CancelURL) == "" {
		return fmt.Errorf("%w: cancel_url is required", ErrConfigInvalid)
	}
	base := strings.TrimSpace(cfg.APIBaseURL)
	if base == "" {
		base = defaultAPIBaseURL
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return fmt.Errorf("%w: api_base_url is invalid", ErrConfigInvalid)
	}
	return nil
}

// NormalizeItems validates and normalizes line items: quantity and unit
// price must be positive, a blank name falls back to DefaultItemName.
func NormalizeItems(items []LineItem) ([]LineItem, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items", ErrLineItemInvalid)
	}
	normalized := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrLineItemInvalid)
		}
		if item.UnitPrice.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: unit price must be positive", ErrLineItemInvalid)
		}
		name := strings.TrimSpace(item.Name)
		if name == "" {
			name = DefaultItemName
		}
		normalized = append(normalized, LineItem{
			Name:      name,
			Image:     strings.TrimSpace(item.Image),
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return normalized, nil
}

// CreateCheckoutSession creates a hosted checkout session for the items
// plus an optional shipping fee line.
func CreateCheckoutSession(ctx context.Context, cfg *Config, input SessionInput) (*SessionResult, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		return nil, fmt.Errorf("%w: currency is required", ErrConfigInvalid)
	}
	items, err := NormalizeItems(input.Items)
	if err != nil {
		return nil, err
	}

	successURL := strings.TrimSpace(input.SuccessURL)
	if successURL == "" {
		successURL = cfg.SuccessURL
	}
	cancelURL := strings.TrimSpace(input.CancelURL)
	if cancelURL == "" {
		cancelURL = cfg.CancelURL
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)
	if ref := strings.TrimSpace(input.OrderRef); ref != "" {
		form.Set("client_reference_id", ref)
		form.Set("metadata[order_ref]", ref)
	}
	form.Add("payment_method_types[]", "card")

	index := 0
	for _, item := range items {
		minor, err := toMinorAmount(item.UnitPrice, currency)
		if err != nil {
			return nil, err
		}
		setLineItem(form, index, item.Name, currency, minor, item.Quantity)
		index++
	}
	if input.ShippingFee.GreaterThan(decimal.Zero) {
		minor, err := toMinorAmount(input.ShippingFee, currency)
		if err != nil {
			return nil, err
		}
		setLineItem(form, index, "Express shipping", currency, minor, 1)
	}

	respBody, statusCode, err := doFormRequest(ctx, cfg, http.MethodPost, "/v1/checkout/sessions", form)
	if err != nil {
		return nil, err
	}
	if statusCode < 200 || statusCode >= 300 {
		return nil, fmt.Errorf("%w: create checkout session status %d", ErrResponseInvalid, statusCode)
	}

	raw, err := decodeRawMap(respBody)
	if err != nil {
		return nil, err
	}
	result := &SessionResult{
		SessionID: strings.TrimSpace(readString(raw, "id")),
		URL:       strings.TrimSpace(readString(raw, "url")),
		Status:    strings.TrimSpace(readString(raw, "status")),
		Raw:       raw,
	}
	if result.SessionID == "" || result.URL == "" {
		return nil, fmt.Errorf("%w: missing session id or url", ErrResponseInvalid)
	}
	return result, nil
}

func setLineItem(form url.Values, index int, name, currency string, minorAmount int64, quantity int) {
	prefix := fmt.Sprintf("line_items[%d]", index)
	form.Set(prefix+"[quantity]", strconv.Itoa(quantity))
	form.Set(prefix+"[price_data][currency]", strings.ToLower(currency))
	form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(minorAmount, 10))
	form.Set(prefix+"[price_data][product_data][name]", name)
}

func toMinorAmount(amount decimal.Decimal, currency string) (int64, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return 0, fmt.Errorf("%w: amount must be greater than zero", ErrLineItemInvalid)
	}
	minor := amount.Shift(int32(currencyScale(currency))).Round(0)
	return minor.IntPart(), nil
}

func currencyScale(currency string) int {
	upper := strings.ToUpper(strings.TrimSpace(currency))
	if _, ok := zeroDecimalCurrencies[upper]; ok {
		return 0
	}
	return 2
}

func doFormRequest(ctx context.Context, cfg *Config, method, path string, form url.Values) ([]byte, int, error) {
	endpoint := apiBaseURL(cfg) + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Authorization", "Bearer "+cfg.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	resp, err := (&http.Client{Timeout: timeout}).Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read response failed", ErrResponseInvalid)
	}
	return body, resp.StatusCode, nil
}

func apiBaseURL(cfg *Config) string {
	base := strings.TrimSpace(cfg.APIBaseURL)
	if base == "" {
		base = defaultAPIBaseURL
	}
	return strings.TrimRight(base, "/")
}

func decodeRawMap(body []byte) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode response failed", ErrResponseInvalid)
	}
	return raw, nil
}

func readString(raw map[string]interface{}, key string) string {
	if raw == nil {
		return ""
	}
	if value, ok := raw[key].(string); ok {
		return value
	}
	return ""
}
