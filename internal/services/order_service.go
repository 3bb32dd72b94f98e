package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"wfxshop/internal/models"
	"wfxshop/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderService turns a checkout submission into a persisted order.
type OrderService interface {
	Submit(ctx context.Context, buyerName, buyerAddress, cartData string) (*models.Order, error)
	GetByReference(ctx context.Context, reference uuid.UUID) (*models.Order, error)
}

type orderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository

	// trustClientPrice keeps the legacy behavior of pricing items from the
	// submitted payload. Off by default: name and price come from the
	// catalog row the item's id points at.
	trustClientPrice bool
}

func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, trustClientPrice bool) OrderService {
	return &orderService{
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		trustClientPrice: trustClientPrice,
	}
}

// Submit validates the buyer fields and the serialized cart, computes the
// total server-side, and persists the order atomically. The client's
// displayed total is never read.
func (s *orderService) Submit(ctx context.Context, buyerName, buyerAddress, cartData string) (*models.Order, error) {
	buyerName = strings.TrimSpace(buyerName)
	buyerAddress = strings.TrimSpace(buyerAddress)
	if buyerName == "" || buyerAddress == "" {
		return nil, ErrMissingBuyer
	}

	var cart []models.CartItem
	if err := json.Unmarshal([]byte(cartData), &cart); err != nil {
		return nil, ErrInvalidCart
	}
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		Reference: uuid.New(),
		Name:      buyerName,
		Address:   buyerAddress,
	}
	for _, entry := range cart {
		item, err := s.priceItem(ctx, entry)
		if err != nil {
			return nil, err
		}
		order.Total += item.ProductPrice * float64(item.Quantity)
		order.Items = append(order.Items, item)
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

// priceItem resolves one cart entry into an order item snapshot. A zero
// quantity means the field was absent and defaults to 1.
func (s *orderService) priceItem(ctx context.Context, entry models.CartItem) (models.OrderItem, error) {
	quantity := entry.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return models.OrderItem{}, ErrInvalidCart
	}

	if s.trustClientPrice {
		if entry.Name == "" || entry.Price < 0 {
			return models.OrderItem{}, ErrInvalidCart
		}
		return models.OrderItem{ProductName: entry.Name, ProductPrice: entry.Price, Quantity: quantity}, nil
	}

	if entry.ID <= 0 {
		return models.OrderItem{}, ErrInvalidCart
	}
	product, err := s.productRepo.GetByID(ctx, entry.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.OrderItem{}, ErrInvalidCart
		}
		return models.OrderItem{}, fmt.Errorf("look up product %d: %w", entry.ID, err)
	}
	return models.OrderItem{ProductName: product.Name, ProductPrice: product.Price, Quantity: quantity}, nil
}

func (s *orderService) GetByReference(ctx context.Context, reference uuid.UUID) (*models.Order, error) {
	return s.orderRepo.GetByReference(ctx, reference)
}
