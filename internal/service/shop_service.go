package service

import (
	"context"
	"net/http"
	"strings"

	"shop-catalog-api/internal/model"
	"shop-catalog-api/pkg/apierror"
)

type ShopStore interface {
	List(ctx context.Context) ([]model.Shop, error)
	FindByID(ctx context.Context, id int64) (model.Shop, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, s *model.Shop) error
	Update(ctx context.Context, s model.Shop) error
	Delete(ctx context.Context, id int64) error
}

type ShopService struct {
	shops ShopStore
}

func NewShopService(shops ShopStore) *ShopService {
	return &ShopService{shops: shops}
}

func (s *ShopService) List(ctx context.Context) ([]model.Shop, error) {
	return s.shops.List(ctx)
}

func (s *ShopService) Get(ctx context.Context, id int64) (model.Shop, error) {
	return s.shops.FindByID(ctx, id)
}

func (s *ShopService) Create(ctx context.Context, req model.CreateShopRequest) (model.Shop, error) {
	if err := validateShopFields(req.Name, req.City, req.Address); err != nil {
		return model.Shop{}, err
	}

	shop := model.Shop{
		Name:    strings.TrimSpace(req.Name),
		City:    strings.TrimSpace(req.City),
		Address: strings.TrimSpace(req.Address),
	}
	if err := s.shops.Create(ctx, &shop); err != nil {
		return model.Shop{}, err
	}
	return shop, nil
}

func (s *ShopService) Update(ctx context.Context, id int64, req model.UpdateShopRequest) (model.Shop, error) {
	if err := validateShopFields(req.Name, req.City, req.Address); err != nil {
		return model.Shop{}, err
	}

	shop, err := s.shops.FindByID(ctx, id)
	if err != nil {
		return model.Shop{}, err
	}

	shop.Name = strings.TrimSpace(req.Name)
	shop.City = strings.TrimSpace(req.City)
	shop.Address = strings.TrimSpace(req.Address)
	if err := s.shops.Update(ctx, shop); err != nil {
		return model.Shop{}, err
	}
	return shop, nil
}

func (s *ShopService) Delete(ctx context.Context, id int64) error {
	return s.shops.Delete(ctx, id)
}

func validateShopFields(name string, city string, address string) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 100 {
		return apierror.New("BAD_REQUEST", "shop name must be 2-100 characters", "name", http.StatusBadRequest)
	}
	if strings.TrimSpace(city) == "" {
		return apierror.New("BAD_REQUEST", "city is required", "city", http.StatusBadRequest)
	}
	address = strings.TrimSpace(address)
	if len(address) < 4 || len(address) > 30 {
		return apierror.New("BAD_REQUEST", "address must be 4-30 characters", "address", http.StatusBadRequest)
	}
	return nil
}
