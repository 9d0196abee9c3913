package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"shop-catalog-api/internal/authz"
	"shop-catalog-api/internal/model"
	"shop-catalog-api/pkg/apierror"
)

type ProductStore interface {
	ListByCategory(ctx context.Context, categoryID int64) ([]model.Product, error)
	FindByID(ctx context.Context, categoryID int64, id int64) (model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, categoryID int64, id int64) error
}

// ProductService is the one catalog service that enforces ownership: products
// remember who created them, and mutations require admin-or-owner.
type ProductService struct {
	shops      ShopStore
	categories CategoryStore
	products   ProductStore
}

func NewProductService(shops ShopStore, categories CategoryStore, products ProductStore) *ProductService {
	return &ProductService{shops: shops, categories: categories, products: products}
}

func (s *ProductService) List(ctx context.Context, shopID int64, categoryID int64) ([]model.Product, error) {
	if err := s.requireChain(ctx, shopID, categoryID); err != nil {
		return nil, err
	}
	return s.products.ListByCategory(ctx, categoryID)
}

func (s *ProductService) Get(ctx context.Context, shopID int64, categoryID int64, id int64) (model.Product, error) {
	if err := s.requireChain(ctx, shopID, categoryID); err != nil {
		return model.Product{}, err
	}
	return s.products.FindByID(ctx, categoryID, id)
}

func (s *ProductService) Create(ctx context.Context, claims *model.AuthClaims, shopID int64, categoryID int64, req model.CreateProductRequest) (model.Product, error) {
	if claims == nil {
		return model.Product{}, model.ErrUnauthorized
	}
	if err := validateProductFields(req.Name, req.Quantity, req.Price); err != nil {
		return model.Product{}, err
	}
	if err := s.requireChain(ctx, shopID, categoryID); err != nil {
		return model.Product{}, err
	}

	product := model.Product{
		CategoryID: categoryID,
		Name:       strings.TrimSpace(req.Name),
		Quantity:   req.Quantity,
		Price:      req.Price,
		OwnerID:    claims.UserID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.products.Create(ctx, &product); err != nil {
		return model.Product{}, err
	}
	return product, nil
}

// Update confirms the product exists before the ownership check runs, so a
// denial is always a 403, never a disguised 404.
func (s *ProductService) Update(ctx context.Context, claims *model.AuthClaims, shopID int64, categoryID int64, id int64, req model.UpdateProductRequest) (model.Product, error) {
	if err := validateProductFields(req.Name, req.Quantity, req.Price); err != nil {
		return model.Product{}, err
	}
	if err := s.requireChain(ctx, shopID, categoryID); err != nil {
		return model.Product{}, err
	}

	product, err := s.products.FindByID(ctx, categoryID, id)
	if err != nil {
		return model.Product{}, err
	}

	if err := authz.AuthorizeClaims(claims, product.OwnerID); err != nil {
		return model.Product{}, err
	}

	product.Name = strings.TrimSpace(req.Name)
	product.Quantity = req.Quantity
	product.Price = req.Price
	if err := s.products.Update(ctx, product); err != nil {
		return model.Product{}, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, claims *model.AuthClaims, shopID int64, categoryID int64, id int64) error {
	if err := s.requireChain(ctx, shopID, categoryID); err != nil {
		return err
	}

	product, err := s.products.FindByID(ctx, categoryID, id)
	if err != nil {
		return err
	}

	if err := authz.AuthorizeClaims(claims, product.OwnerID); err != nil {
		return err
	}

	return s.products.Delete(ctx, categoryID, id)
}

func (s *ProductService) requireChain(ctx context.Context, shopID int64, categoryID int64) error {
	exists, err := s.shops.Exists(ctx, shopID)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrShopNotFound
	}

	if _, err := s.categories.FindByID(ctx, shopID, categoryID); err != nil {
		return err
	}
	return nil
}

func validateProductFields(name string, quantity int, price int64) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 20 {
		return apierror.New("BAD_REQUEST", "product name must be 2-20 characters", "name", http.StatusBadRequest)
	}
	if quantity < 0 {
		return apierror.New("BAD_REQUEST", "quantity cannot be negative", "quantity", http.StatusBadRequest)
	}
	if price < 0 {
		return apierror.New("BAD_REQUEST", "price cannot be negative", "price", http.StatusBadRequest)
	}
	return nil
}
