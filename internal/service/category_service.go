package service

import (
	"context"
	"net/http"
	"strings"

	"shop-catalog-api/internal/model"
	"shop-catalog-api/pkg/apierror"
)

type CategoryStore interface {
	ListByShop(ctx context.Context, shopID int64) ([]model.Category, error)
	FindByID(ctx context.Context, shopID int64, id int64) (model.Category, error)
	Create(ctx context.Context, c *model.Category) error
	Update(ctx context.Context, c model.Category) error
	Delete(ctx context.Context, shopID int64, id int64) error
}

type CategoryService struct {
	shops      ShopStore
	categories CategoryStore
}

func NewCategoryService(shops ShopStore, categories CategoryStore) *CategoryService {
	return &CategoryService{shops: shops, categories: categories}
}

func (s *CategoryService) List(ctx context.Context, shopID int64) ([]model.Category, error) {
	if err := s.requireShop(ctx, shopID); err != nil {
		return nil, err
	}
	return s.categories.ListByShop(ctx, shopID)
}

func (s *CategoryService) Get(ctx context.Context, shopID int64, id int64) (model.Category, error) {
	if err := s.requireShop(ctx, shopID); err != nil {
		return model.Category{}, err
	}
	return s.categories.FindByID(ctx, shopID, id)
}

func (s *CategoryService) Create(ctx context.Context, shopID int64, req model.CreateCategoryRequest) (model.Category, error) {
	if err := validateCategoryName(req.Name); err != nil {
		return model.Category{}, err
	}
	if err := s.requireShop(ctx, shopID); err != nil {
		return model.Category{}, err
	}

	category := model.Category{
		ShopID: shopID,
		Name:   strings.TrimSpace(req.Name),
	}
	if err := s.categories.Create(ctx, &category); err != nil {
		return model.Category{}, err
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, shopID int64, id int64, req model.UpdateCategoryRequest) (model.Category, error) {
	if err := validateCategoryName(req.Name); err != nil {
		return model.Category{}, err
	}
	if err := s.requireShop(ctx, shopID); err != nil {
		return model.Category{}, err
	}

	category, err := s.categories.FindByID(ctx, shopID, id)
	if err != nil {
		return model.Category{}, err
	}

	category.Name = strings.TrimSpace(req.Name)
	if err := s.categories.Update(ctx, category); err != nil {
		return model.Category{}, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, shopID int64, id int64) error {
	if err := s.requireShop(ctx, shopID); err != nil {
		return err
	}
	return s.categories.Delete(ctx, shopID, id)
}

func (s *CategoryService) requireShop(ctx context.Context, shopID int64) error {
	exists, err := s.shops.Exists(ctx, shopID)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrShopNotFound
	}
	return nil
}

func validateCategoryName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 100 {
		return apierror.New("BAD_REQUEST", "category name must be 2-100 characters", "name", http.StatusBadRequest)
	}
	return nil
}
