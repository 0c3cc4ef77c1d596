package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/techgear-vn/techgear-api/internal/config"
	"github.com/techgear-vn/techgear-api/internal/constants"
	"github.com/techgear-vn/techgear-api/internal/payment/stripe"

	"github.com/shopspring/decimal"
)

// CheckoutItemInput is one submitted checkout line.
type CheckoutItemInput struct {
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// CreateSessionInput is the hosted payment session payload.
type CreateSessionInput struct {
	UserID         uint
	OrderRef       string
	Items          []CheckoutItemInput
	ShippingMethod string
}

// CheckoutSession is the created session returned to the storefront.
type CheckoutSession struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// CheckoutService builds hosted payment sessions.
type CheckoutService struct {
	cfg *config.CheckoutConfig
}

// NewCheckoutService creates the checkout service.
func NewCheckoutService(cfg *config.CheckoutConfig) *CheckoutService {
	return &CheckoutService{cfg: cfg}
}

// CreateSession validates the submitted lines and opens a hosted checkout
// session. Express shipping adds a flat fee line.
func (s *CheckoutService) CreateSession(ctx context.Context, input CreateSessionInput) (*CheckoutSession, error) {
	if s.cfg == nil || strings.TrimSpace(s.cfg.Stripe.SecretKey) == "" {
		return nil, ErrCheckoutDisabled
	}
	if len(input.Items) == 0 {
		return nil, ErrInvalidLineItem
	}

	items := make([]stripe.LineItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, stripe.LineItem{
			Name:      item.Name,
			Image:     item.Image,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	shippingFee := decimal.Zero
	if strings.EqualFold(strings.TrimSpace(input.ShippingMethod), constants.ShippingMethodExpress) {
		shippingFee = decimal.NewFromInt(s.cfg.ExpressShippingFee)
	}

	stripeCfg := &stripe.Config{
		SecretKey:  s.cfg.Stripe.SecretKey,
		SuccessURL: s.cfg.Stripe.SuccessURL,
		CancelURL:  s.cfg.Stripe.CancelURL,
		APIBaseURL: s.cfg.Stripe.APIBaseURL,
		Timeout:    time.Duration(s.cfg.Stripe.TimeoutMS) * time.Millisecond,
	}
	result, err := stripe.CreateCheckoutSession(ctx, stripeCfg, stripe.SessionInput{
		OrderRef:    input.OrderRef,
		Currency:    s.cfg.Currency,
		Items:       items,
		ShippingFee: shippingFee,
	})
	if err != nil {
		if errors.Is(err, stripe.ErrLineItemInvalid) {
			return nil, ErrInvalidLineItem
		}
		return nil, err
	}
	return &CheckoutSession{SessionID: result.SessionID, URL: result.URL}, nil
}
