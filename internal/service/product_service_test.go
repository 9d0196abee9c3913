package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"shop-catalog-api/internal/model"
	"shop-catalog-api/pkg/apierror"
)

type productFixture struct {
	svc        *ProductService
	shops      *fakeShopStore
	categories *fakeCategoryStore
	products   *fakeProductStore
	shopID     int64
	categoryID int64
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()

	shops := newFakeShopStore()
	categories := newFakeCategoryStore()
	products := newFakeProductStore()

	shop := model.Shop{Name: "Corner Store", City: "Riga", Address: "Main St 1"}
	require.NoError(t, shops.Create(context.Background(), &shop))

	category := model.Category{ShopID: shop.ID, Name: "Beverages"}
	require.NoError(t, categories.Create(context.Background(), &category))

	return &productFixture{
		svc:        NewProductService(shops, categories, products),
		shops:      shops,
		categories: categories,
		products:   products,
		shopID:     shop.ID,
		categoryID: category.ID,
	}
}

func ownerClaims(userID string, roles ...string) *model.AuthClaims {
	return &model.AuthClaims{UserID: userID, Username: "u-" + userID, Roles: roles}
}

func TestProductCreateStampsOwner(t *testing.T) {
	t.Parallel()

	fx := newProductFixture(t)
	ctx := context.Background()

	created, err := fx.svc.Create(ctx, ownerClaims("u1", model.RoleUser), fx.shopID, fx.categoryID, model.CreateProductRequest{
		Name: "Cola", Quantity: 10, Price: 250,
	})
	require.NoError(t, err)
	require.Equal(t, "u1", created.OwnerID)
	require.NotZero(t, created.ID)
	require.Equal(t, fx.categoryID, created.CategoryID)
}

func TestProductCreateRequiresAuth(t *testing.T) {
	t.Parallel()

	fx := newProductFixture(t)

	_, err := fx.svc.Create(context.Background(), nil, fx.shopID, fx.categoryID, model.CreateProductRequest{
		Name: "Cola", Quantity: 1, Price: 100,
	})
	require.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestProductUpdateOwnership(t *testing.T) {
	t.Parallel()

	fx := newProductFixture(t)
	ctx := context.Background()

	created, err := fx.svc.Create(ctx, ownerClaims("u1", model.RoleUser), fx.shopID, fx.categoryID, model.CreateProductRequest{
		Name: "Cola", Quantity: 10, Price: 250,
	})
	require.NoError(t, err)

	req := model.UpdateProductRequest{Name: "Cola Zero", Quantity: 5, Price: 300}

	t.Run("non-owner is denied", func(t *testing.T) {
		_, err := fx.svc.Update(ctx, ownerClaims("u2", model.RoleUser), fx.shopID, fx.categoryID, created.ID, req)
		require.ErrorIs(t, err, model.ErrForbidden)

		unchanged := fx.products.products[created.ID]
		require.Equal(t, "Cola", unchanged.Name)
	})

	t.Run("owner may update", func(t *testing.T) {
		updated, err := fx.svc.Update(ctx, ownerClaims("u1", model.RoleUser), fx.shopID, fx.categoryID, created.ID, req)
		require.NoError(t, err)
		require.Equal(t, "Cola Zero", updated.Name)
		require.Equal(t, "u1", updated.OwnerID)
	})

	t.Run("admin may update anyone's product", func(t *testing.T) {
		updated, err := fx.svc.Update(ctx, ownerClaims("u3", model.RoleAdmin), fx.shopID, fx.categoryID, created.ID, req)
		require.NoError(t, err)
		// ownership does not transfer on admin edits
		require.Equal(t, "u1", updated.OwnerID)
	})
}

func TestProductDeleteOwnership(t *testing.T) {
	t.Parallel()

	fx := newProductFixture(t)
	ctx := context.Background()

	created, err := fx.svc.Create(ctx, ownerClaims("u1", model.RoleUser), fx.shopID, fx.categoryID, model.CreateProductRequest{
		Name: "Cola", Quantity: 10, Price: 250,
	})
	require.NoError(t, err)

	err = fx.svc.Delete(ctx, ownerClaims("u2", model.RoleUser), fx.shopID, fx.categoryID, created.ID)
	require.ErrorIs(t, err, model.ErrForbidden)
	require.Contains(t, fx.products.products, created.ID)

	err = fx.svc.Delete(ctx, ownerClaims("u1", model.RoleUser), fx.shopID, fx.categoryID, created.ID)
	require.NoError(t, err)
	require.NotContains(t, fx.products.products, created.ID)
}

func TestProductDenialIsForbiddenNotNotFound(t *testing.T) {
	t.Parallel()

	fx := newProductFixture(t)
	ctx := context.Background()

	created, err := fx.svc.Create(ctx, ownerClaims("u1", model.RoleUser), fx.shopID, fx.categoryID, model.CreateProductRequest{
		Name: "Cola", Quantity: 10, Price: 250,
	})
	require.NoError(t, err)

	// Existing product, foreign subject: the denial must not masquerade as a
	// missing resource.
	err = fx.svc.Delete(ctx, ownerClaims("u2", model.RoleUser), fx.shopID, fx.categoryID, created.ID)
	require.ErrorIs(t, err, model.ErrForbidden)
	require.NotErrorIs(t, err, model.ErrProductNotFound)

	// Missing product stays a plain not-found, regardless of who asks.
	err = fx.svc.Delete(ctx, ownerClaims("u2", model.RoleUser), fx.shopID, fx.categoryID, created.ID+100)
	require.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestProductParentChain(t *testing.T) {
	t.Parallel()

	fx := newProductFixture(t)
	ctx := context.Background()
	claims := ownerClaims("u1", model.RoleUser)
	req := model.CreateProductRequest{Name: "Cola", Quantity: 1, Price: 100}

	t.Run("missing shop", func(t *testing.T) {
		_, err := fx.svc.List(ctx, fx.shopID+100, fx.categoryID)
		require.ErrorIs(t, err, model.ErrShopNotFound)

		_, err = fx.svc.Create(ctx, claims, fx.shopID+100, fx.categoryID, req)
		require.ErrorIs(t, err, model.ErrShopNotFound)
	})

	t.Run("missing category", func(t *testing.T) {
		_, err := fx.svc.List(ctx, fx.shopID, fx.categoryID+100)
		require.ErrorIs(t, err, model.ErrCategoryNotFound)

		_, err = fx.svc.Create(ctx, claims, fx.shopID, fx.categoryID+100, req)
		require.ErrorIs(t, err, model.ErrCategoryNotFound)
	})

	t.Run("category under a different shop", func(t *testing.T) {
		other := model.Shop{Name: "Other Shop", City: "Riga", Address: "Side St 2"}
		require.NoError(t, fx.shops.Create(ctx, &other))

		_, err := fx.svc.List(ctx, other.ID, fx.categoryID)
		require.ErrorIs(t, err, model.ErrCategoryNotFound)
	})

	t.Run("missing product", func(t *testing.T) {
		_, err := fx.svc.Get(ctx, fx.shopID, fx.categoryID, 999)
		require.ErrorIs(t, err, model.ErrProductNotFound)
	})
}

func TestProductValidation(t *testing.T) {
	t.Parallel()

	fx := newProductFixture(t)
	ctx := context.Background()
	claims := ownerClaims("u1", model.RoleUser)

	tests := []struct {
		name string
		req  model.CreateProductRequest
	}{
		{name: "name too short", req: model.CreateProductRequest{Name: "x", Quantity: 1, Price: 100}},
		{name: "name too long", req: model.CreateProductRequest{Name: "this product name is far too long", Quantity: 1, Price: 100}},
		{name: "negative quantity", req: model.CreateProductRequest{Name: "Cola", Quantity: -1, Price: 100}},
		{name: "negative price", req: model.CreateProductRequest{Name: "Cola", Quantity: 1, Price: -100}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.svc.Create(ctx, claims, fx.shopID, fx.categoryID, tc.req)
			require.Error(t, err)

			var apiErr *apierror.APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, "BAD_REQUEST", apiErr.Code)
		})
	}
}
