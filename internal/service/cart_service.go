package service

import (
	"github.com/techgear-vn/techgear-api/internal/models"
	"github.com/techgear-vn/techgear-api/internal/repository"

	"github.com/shopspring/decimal"
)

// CartLineInput is one submitted cart line.
type CartLineInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// CartItemDetail is a cart line with product data for display.
type CartItemDetail struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice models.Money    `json:"unit_price"`
	LineTotal models.Money    `json:"line_total"`
	Product   *models.Product `json:"product"`
}

// CartDetail is the assembled cart response.
type CartDetail struct {
	CartID uint             `json:"cart_id"`
	Items  []CartItemDetail `json:"items"`
	Total  models.Money     `json:"total"`
}

// CartService owns the server-side cart.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates the cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Replace overwrites the user's cart with the submitted lines. The whole
// set is replaced, so concurrent syncs resolve to whichever arrived last.
func (s *CartService) Replace(userID uint, lines []CartLineInput) (*CartDetail, error) {
	if userID == 0 {
		return nil, ErrInvalidCartItem
	}
	cart, err := s.cartRepo.FindOrCreate(userID)
	if err != nil {
		return nil, err
	}

	items := make([]models.CartItem, 0, len(lines))
	for _, line := range lines {
		if line.ProductID == 0 || line.Quantity <= 0 {
			continue
		}
		items = append(items, models.CartItem{
			CartID:    cart.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	if err := s.cartRepo.ReplaceItems(cart.ID, items); err != nil {
		return nil, err
	}
	return s.Get(userID)
}

// Get returns the user's cart with product data and the computed total.
// Lines whose product has been removed are dropped from the view.
func (s *CartService) Get(userID uint) (*CartDetail, error) {
	if userID == 0 {
		return nil, ErrInvalidCartItem
	}
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &CartDetail{Items: []CartItemDetail{}, Total: models.NewMoneyFromInt(0)}, nil
	}

	details := make([]CartItemDetail, 0, len(cart.Items))
	total := decimal.Zero
	for _, item := range cart.Items {
		product := item.Product
		if product == nil || product.ID == 0 {
			continue
		}
		lineTotal := product.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		details = append(details, CartItemDetail{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			LineTotal: models.NewMoneyFromDecimal(lineTotal),
			Product:   product,
		})
	}
	return &CartDetail{
		CartID: cart.ID,
		Items:  details,
		Total:  models.NewMoneyFromDecimal(total),
	}, nil
}

// AddItem adds a product to the cart, accumulating quantity onto an
// existing line for the same product.
func (s *CartService) AddItem(userID, productID uint, quantity int) (*CartDetail, error) {
	if userID == 0 || productID == 0 || quantity <= 0 {
		return nil, ErrInvalidCartItem
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	cart, err := s.cartRepo.FindOrCreate(userID)
	if err != nil {
		return nil, err
	}

	newQuantity := quantity
	existing, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		for _, item := range existing.Items {
			if item.ProductID == productID {
				newQuantity += item.Quantity
				break
			}
		}
	}

	err = s.cartRepo.UpsertItem(&models.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  newQuantity,
	})
	if err != nil {
		return nil, err
	}
	return s.Get(userID)
}

// UpdateQuantity sets a line's quantity verbatim. Zero and negative values
// are stored as submitted; the storefront hides such lines on render.
func (s *CartService) UpdateQuantity(userID, productID uint, quantity int) (*CartDetail, error) {
	if userID == 0 || productID == 0 {
		return nil, ErrInvalidCartItem
	}
	cart, err := s.cartRepo.FindOrCreate(userID)
	if err != nil {
		return nil, err
	}
	err = s.cartRepo.UpsertItem(&models.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		return nil, err
	}
	return s.Get(userID)
}

// RemoveItem drops one product line.
func (s *CartService) RemoveItem(userID, productID uint) (*CartDetail, error) {
	if userID == 0 || productID == 0 {
		return nil, ErrInvalidCartItem
	}
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &CartDetail{Items: []CartItemDetail{}, Total: models.NewMoneyFromInt(0)}, nil
	}
	if err := s.cartRepo.DeleteItem(cart.ID, productID); err != nil {
		return nil, err
	}
	return s.Get(userID)
}

// Clear empties the cart.
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrInvalidCartItem
	}
	return s.cartRepo.ClearByUser(userID)
}
