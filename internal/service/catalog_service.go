package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shelfmetrics/retail-optimizer/internal/domain"
	"github.com/shelfmetrics/retail-optimizer/internal/repository"
)

type CatalogService struct {
	products repository.ProductRepository
}

func NewCatalogService(products repository.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

func (s *CatalogService) Create(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	product.SKU = strings.ToUpper(strings.TrimSpace(product.SKU))
	return s.products.Create(ctx, product)
}

func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *CatalogService) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return s.products.GetBySKU(ctx, strings.ToUpper(strings.TrimSpace(sku)))
}

func (s *CatalogService) List(ctx context.Context, category, search string, limit, offset int) ([]domain.Product, error) {
	return s.products.List(ctx, category, search, limit, offset)
}

func (s *CatalogService) Update(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	product.SKU = strings.ToUpper(strings.TrimSpace(product.SKU))
	return s.products.Update(ctx, product)
}

func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.products.Delete(ctx, id)
}

func validateProduct(product *domain.Product) error {
	if strings.TrimSpace(product.SKU) == "" {
		return fmt.Errorf("product sku is required: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(product.Name) == "" {
		return fmt.Errorf("product name is required: %w", domain.ErrValidation)
	}
	if product.Price.LessThan(decimal.Zero) {
		return fmt.Errorf("product price cannot be negative: %w", domain.ErrValidation)
	}
	if product.Cost.Valid && product.Cost.Decimal.LessThan(decimal.Zero) {
		return fmt.Errorf("product cost cannot be negative: %w", domain.ErrValidation)
	}
	return nil
}
