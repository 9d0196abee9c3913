package service

import (
	"context"
	"strings"

	"shop-catalog-api/internal/model"
)

// In-memory stands-ins for the pgx repositories. They implement just enough
// of the store interfaces for the flows under test.

type fakeUserStore struct {
	users   map[string]model.User
	roles   map[string][]string
	roleSet map[string]bool
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:   map[string]model.User{},
		roles:   map[string][]string{},
		roleSet: map[string]bool{},
	}
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (model.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Username, strings.TrimSpace(username)) {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (f *fakeUserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := f.FindByUsername(ctx, username)
	return err == nil, nil
}

func (f *fakeUserStore) Create(_ context.Context, u model.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserStore) Update(_ context.Context, u model.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return model.ErrUserNotFound
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserStore) GetRoles(_ context.Context, userID string) ([]string, error) {
	roles := f.roles[userID]
	out := make([]string, len(roles))
	copy(out, roles)
	return out, nil
}

func (f *fakeUserStore) AddRole(_ context.Context, userID string, role string) error {
	for _, existing := range f.roles[userID] {
		if existing == role {
			return nil
		}
	}
	f.roles[userID] = append(f.roles[userID], role)
	return nil
}

func (f *fakeUserStore) RoleExists(_ context.Context, name string) (bool, error) {
	return f.roleSet[name], nil
}

func (f *fakeUserStore) CreateRole(_ context.Context, name string) error {
	f.roleSet[name] = true
	return nil
}

type fakeShopStore struct {
	shops  map[int64]model.Shop
	nextID int64
}

func newFakeShopStore() *fakeShopStore {
	return &fakeShopStore{shops: map[int64]model.Shop{}}
}

func (f *fakeShopStore) List(_ context.Context) ([]model.Shop, error) {
	out := make([]model.Shop, 0, len(f.shops))
	for _, s := range f.shops {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeShopStore) FindByID(_ context.Context, id int64) (model.Shop, error) {
	s, ok := f.shops[id]
	if !ok {
		return model.Shop{}, model.ErrShopNotFound
	}
	return s, nil
}

func (f *fakeShopStore) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.shops[id]
	return ok, nil
}

func (f *fakeShopStore) Create(_ context.Context, s *model.Shop) error {
	f.nextID++
	s.ID = f.nextID
	f.shops[s.ID] = *s
	return nil
}

func (f *fakeShopStore) Update(_ context.Context, s model.Shop) error {
	if _, ok := f.shops[s.ID]; !ok {
		return model.ErrShopNotFound
	}
	f.shops[s.ID] = s
	return nil
}

func (f *fakeShopStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.shops[id]; !ok {
		return model.ErrShopNotFound
	}
	delete(f.shops, id)
	return nil
}

type fakeCategoryStore struct {
	categories map[int64]model.Category
	nextID     int64
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: map[int64]model.Category{}}
}

func (f *fakeCategoryStore) ListByShop(_ context.Context, shopID int64) ([]model.Category, error) {
	out := make([]model.Category, 0)
	for _, c := range f.categories {
		if c.ShopID == shopID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryStore) FindByID(_ context.Context, shopID int64, id int64) (model.Category, error) {
	c, ok := f.categories[id]
	if !ok || c.ShopID != shopID {
		return model.Category{}, model.ErrCategoryNotFound
	}
	return c, nil
}

func (f *fakeCategoryStore) Create(_ context.Context, c *model.Category) error {
	f.nextID++
	c.ID = f.nextID
	f.categories[c.ID] = *c
	return nil
}

func (f *fakeCategoryStore) Update(_ context.Context, c model.Category) error {
	existing, ok := f.categories[c.ID]
	if !ok || existing.ShopID != c.ShopID {
		return model.ErrCategoryNotFound
	}
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryStore) Delete(_ context.Context, shopID int64, id int64) error {
	existing, ok := f.categories[id]
	if !ok || existing.ShopID != shopID {
		return model.ErrCategoryNotFound
	}
	delete(f.categories, id)
	return nil
}

type fakeProductStore struct {
	products map[int64]model.Product
	nextID   int64
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: map[int64]model.Product{}}
}

func (f *fakeProductStore) ListByCategory(_ context.Context, categoryID int64) ([]model.Product, error) {
	out := make([]model.Product, 0)
	for _, p := range f.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) FindByID(_ context.Context, categoryID int64, id int64) (model.Product, error) {
	p, ok := f.products[id]
	if !ok || p.CategoryID != categoryID {
		return model.Product{}, model.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductStore) Create(_ context.Context, p *model.Product) error {
	f.nextID++
	p.ID = f.nextID
	f.products[p.ID] = *p
	return nil
}

func (f *fakeProductStore) Update(_ context.Context, p model.Product) error {
	existing, ok := f.products[p.ID]
	if !ok || existing.CategoryID != p.CategoryID {
		return model.ErrProductNotFound
	}
	// owner_id is immutable, mirror the SQL UPDATE column list
	p.OwnerID = existing.OwnerID
	p.CreatedAt = existing.CreatedAt
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductStore) Delete(_ context.Context, categoryID int64, id int64) error {
	existing, ok := f.products[id]
	if !ok || existing.CategoryID != categoryID {
		return model.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}
