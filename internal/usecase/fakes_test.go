package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yab-g4u/Ablack/internal/domain"
)

// In-memory fakes standing in for the postgres repositories.

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// rollbackTxManager gives the fakes transaction semantics: state is
// snapshotted before fn runs and restored when fn fails.
type rollbackTxManager struct {
	orders   *fakeOrderRepo
	products *fakeProductRepo
}

func (t rollbackTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	orders := t.orders.snapshot()
	products := t.products.snapshot()
	if err := fn(ctx); err != nil {
		t.orders.restore(orders)
		t.products.restore(products)
		return err
	}
	return nil
}

type fakeUserRepo struct {
	users    map[string]*domain.User // by id
	profiles map[string]*domain.Profile
	tokens   map[string]*domain.RefreshToken
	nextID   int

	failCreate bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    map[string]*domain.User{},
		profiles: map[string]*domain.Profile{},
		tokens:   map[string]*domain.RefreshToken{},
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if f.failCreate {
		return errors.New("create failed")
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.ErrDuplicate
		}
	}
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	user.CreatedAt = time.Now()
	copy := *user
	f.users[user.ID] = &copy
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) CreateProfile(_ context.Context, profile *domain.Profile) error {
	copy := *profile
	f.profiles[profile.ID] = &copy
	return nil
}

func (f *fakeUserRepo) GetProfile(_ context.Context, userID string) (*domain.Profile, error) {
	if p, ok := f.profiles[userID]; ok {
		copy := *p
		return &copy, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, profile *domain.Profile) (*domain.Profile, error) {
	if _, ok := f.profiles[profile.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	copy := *profile
	f.profiles[profile.ID] = &copy
	out := copy
	return &out, nil
}

func (f *fakeUserRepo) SaveRefreshToken(_ context.Context, token *domain.RefreshToken) error {
	copy := *token
	f.tokens[token.Token] = &copy
	return nil
}

func (f *fakeUserRepo) GetRefreshToken(_ context.Context, token string) (*domain.RefreshToken, error) {
	if t, ok := f.tokens[token]; ok {
		copy := *t
		return &copy, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) RevokeRefreshToken(_ context.Context, token string) error {
	if t, ok := f.tokens[token]; ok {
		t.Revoked = true
	}
	return nil
}

type fakeProductRepo struct {
	products map[string]*domain.Product
	fail     bool
}

func newFakeProductRepo(products ...domain.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: map[string]*domain.Product{}}
	for i := range products {
		p := products[i]
		f.products[p.ID] = &p
	}
	return f
}

func (f *fakeProductRepo) GetAll(_ context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if f.fail {
		return nil, errors.New("database unavailable")
	}
	var out []domain.Product
	for _, p := range f.products {
		if filter.Category != "" && filter.Category != "all" && p.Category != filter.Category {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if f.fail {
		return nil, errors.New("database unavailable")
	}
	if p, ok := f.products[id]; ok {
		copy := *p
		return &copy, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProductRepo) Search(_ context.Context, query string) ([]domain.Product, error) {
	return f.GetAll(context.Background(), domain.ProductFilter{Search: query})
}

func (f *fakeProductRepo) DecrementStock(_ context.Context, productID string, quantity int) error {
	p, ok := f.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.StockQuantity < quantity {
		return fmt.Errorf("product %s: insufficient stock", productID)
	}
	p.StockQuantity -= quantity
	return nil
}

func (f *fakeProductRepo) snapshot() map[string]domain.Product {
	s := map[string]domain.Product{}
	for id, p := range f.products {
		s[id] = *p
	}
	return s
}

func (f *fakeProductRepo) restore(s map[string]domain.Product) {
	f.products = map[string]*domain.Product{}
	for id := range s {
		p := s[id]
		f.products[id] = &p
	}
}

type fakeOrderRepo struct {
	orders map[string]*domain.Order
	items  map[string][]domain.OrderItem
	nextID int

	failItems bool
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: map[string]*domain.Order{},
		items:  map[string][]domain.OrderItem{},
	}
}

func (f *fakeOrderRepo) CreateOrder(_ context.Context, order *domain.Order) error {
	f.nextID++
	order.ID = fmt.Sprintf("order-%d", f.nextID)
	order.CreatedAt = time.Now()
	copy := *order
	f.orders[order.ID] = &copy
	return nil
}

func (f *fakeOrderRepo) CreateOrderItems(_ context.Context, orderID string, items []domain.OrderItem) error {
	if f.failItems {
		return errors.New("insert failed")
	}
	for i := range items {
		items[i].OrderID = orderID
		items[i].ID = fmt.Sprintf("%s-item-%d", orderID, i)
	}
	f.items[orderID] = append([]domain.OrderItem(nil), items...)
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id, userID string) (*domain.Order, error) {
	o, ok := f.orders[id]
	if !ok || o.UserID != userID {
		return nil, domain.ErrNotFound
	}
	copy := *o
	return &copy, nil
}

func (f *fakeOrderRepo) GetByUserID(_ context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) GetOrderItems(_ context.Context, orderID string) ([]domain.OrderItem, error) {
	return append([]domain.OrderItem(nil), f.items[orderID]...), nil
}

type orderRepoState struct {
	orders map[string]*domain.Order
	items  map[string][]domain.OrderItem
	nextID int
}

func (f *fakeOrderRepo) snapshot() orderRepoState {
	s := orderRepoState{
		orders: map[string]*domain.Order{},
		items:  map[string][]domain.OrderItem{},
		nextID: f.nextID,
	}
	for id, o := range f.orders {
		copy := *o
		s.orders[id] = &copy
	}
	for id, items := range f.items {
		s.items[id] = append([]domain.OrderItem(nil), items...)
	}
	return s
}

func (f *fakeOrderRepo) restore(s orderRepoState) {
	f.orders = s.orders
	f.items = s.items
	f.nextID = s.nextID
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id, userID, status string) error {
	o, ok := f.orders[id]
	if !ok || o.UserID != userID {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

type fakePaymentRepo struct {
	methods map[string]*domain.PaymentMethod
	nextID  int
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{methods: map[string]*domain.PaymentMethod{}}
}

func (f *fakePaymentRepo) GetByUserID(_ context.Context, userID string) ([]domain.PaymentMethod, error) {
	var defaults, rest []domain.PaymentMethod
	for _, pm := range f.methods {
		if pm.UserID != userID {
			continue
		}
		if pm.IsDefault {
			defaults = append(defaults, *pm)
		} else {
			rest = append(rest, *pm)
		}
	}
	return append(defaults, rest...), nil
}

func (f *fakePaymentRepo) Create(_ context.Context, pm *domain.PaymentMethod) error {
	f.nextID++
	pm.ID = fmt.Sprintf("pm-%d", f.nextID)
	copy := *pm
	f.methods[pm.ID] = &copy
	return nil
}

func (f *fakePaymentRepo) Update(_ context.Context, pm *domain.PaymentMethod) (*domain.PaymentMethod, error) {
	existing, ok := f.methods[pm.ID]
	if !ok || existing.UserID != pm.UserID {
		return nil, domain.ErrNotFound
	}
	copy := *pm
	f.methods[pm.ID] = &copy
	out := copy
	return &out, nil
}

func (f *fakePaymentRepo) Delete(_ context.Context, id, userID string) error {
	pm, ok := f.methods[id]
	if !ok || pm.UserID != userID {
		return domain.ErrNotFound
	}
	delete(f.methods, id)
	return nil
}

func (f *fakePaymentRepo) ClearDefault(_ context.Context, userID, keep string) error {
	for id, pm := range f.methods {
		if pm.UserID == userID && id != keep {
			pm.IsDefault = false
		}
	}
	return nil
}

type fakeWishlistRepo struct {
	rows   map[string]*domain.WishlistItem // key: userID+"/"+productID
	nextID int
}

func newFakeWishlistRepo() *fakeWishlistRepo {
	return &fakeWishlistRepo{rows: map[string]*domain.WishlistItem{}}
}

func (f *fakeWishlistRepo) GetByUserID(_ context.Context, userID string) ([]domain.WishlistItem, error) {
	var out []domain.WishlistItem
	for _, it := range f.rows {
		if it.UserID == userID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (f *fakeWishlistRepo) Add(_ context.Context, userID, productID string) (*domain.WishlistItem, error) {
	key := userID + "/" + productID
	if _, ok := f.rows[key]; ok {
		return nil, domain.ErrDuplicate
	}
	f.nextID++
	it := &domain.WishlistItem{
		ID:        fmt.Sprintf("wl-%d", f.nextID),
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now(),
	}
	f.rows[key] = it
	copy := *it
	return &copy, nil
}

func (f *fakeWishlistRepo) Remove(_ context.Context, userID, productID string) error {
	key := userID + "/" + productID
	if _, ok := f.rows[key]; !ok {
		return domain.ErrNotFound
	}
	delete(f.rows, key)
	return nil
}

// fakeCache implements cache.CacheService over a plain map.
type fakeCache struct {
	entries map[string]interface{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]interface{}{}}
}

func (f *fakeCache) Get(key string) (interface{}, bool) {
	v, ok := f.entries[key]
	return v, ok
}

func (f *fakeCache) Set(key string, value interface{}, _ time.Duration) {
	f.entries[key] = value
}

func (f *fakeCache) Delete(key string) {
	delete(f.entries, key)
}

func (f *fakeCache) Flush() {
	f.entries = map[string]interface{}{}
}
