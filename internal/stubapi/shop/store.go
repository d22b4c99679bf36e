package shop

import (
	"cmp"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// PasswordHasher хэширует и проверяет пароли.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, hash string) (bool, error)
}

type cartLine struct {
	productID int64
	quantity  int
}

type wishEntry struct {
	id        int64
	productID int64
}

// Store - потокобезопасное состояние магазина.
type Store struct {
	hasher PasswordHasher
	now    func() time.Time

	mu         sync.RWMutex
	nextID     int64
	users      map[int64]*User
	byUsername map[string]int64
	products   map[int64]*Product
	reviews    []Review
	carts      map[int64][]cartLine
	orders     []Order
	wishlists  map[int64][]wishEntry
	addresses  map[int64][]Address
	resets     map[string]int64
}

// NewStore создает магазин с каталогом catalog.
func NewStore(hasher PasswordHasher, catalog []Product, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	s := &Store{
		hasher:     hasher,
		now:        now,
		nextID:     100,
		users:      make(map[int64]*User),
		byUsername: make(map[string]int64),
		products:   make(map[int64]*Product, len(catalog)),
		carts:      make(map[int64][]cartLine),
		wishlists:  make(map[int64][]wishEntry),
		addresses:  make(map[int64][]Address),
		resets:     make(map[string]int64),
	}
	for i := range catalog {
		p := catalog[i]
		s.products[p.ID] = &p
	}
	return s
}

// id выдает следующий идентификатор; вызывается под s.mu.
func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// Register создает пользователя.
func (s *Store) Register(ctx context.Context, username, email, phone, password string) (*User, error) {
	key := strings.ToLower(username)

	s.mu.RLock()
	_, exists := s.byUsername[key]
	s.mu.RUnlock()
	if exists {
		return nil, ErrUserExists
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[key]; exists {
		return nil, ErrUserExists
	}

	u := &User{
		ID:           s.id(),
		Username:     username,
		Email:        email,
		PhoneNumber:  phone,
		PasswordHash: hash,
	}
	s.users[u.ID] = u
	s.byUsername[key] = u.ID

	out := *u
	return &out, nil
}

// Authenticate проверяет имя пользователя и пароль.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*User, error) {
	s.mu.RLock()
	id, ok := s.byUsername[strings.ToLower(username)]
	var u User
	if ok {
		u = *s.users[id]
	}
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidCredentials
	}

	match, err := s.hasher.Verify(ctx, password, u.PasswordHash)
	if err != nil || !match {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// User возвращает пользователя по идентификатору.
func (s *Store) User(id int64) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := *u
	return &out, nil
}

// UpdateProfile заменяет поля профиля.
func (s *Store) UpdateProfile(id int64, username, fullName, email, phone string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	key := strings.ToLower(username)
	if owner, taken := s.byUsername[key]; taken && owner != id {
		return nil, ErrUserExists
	}
	delete(s.byUsername, strings.ToLower(u.Username))
	s.byUsername[key] = id

	u.Username, u.FullName, u.Email, u.PhoneNumber = username, fullName, email, phone
	out := *u
	return &out, nil
}

// RequestPasswordReset создает ссылку сброса для email. ok false, если адрес неизвестен.
func (s *Store) RequestPasswordReset(email string) (uid, token string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			token = uuid.NewString()
			s.resets[token] = u.ID
			return EncodeUID(u.ID), token, true
		}
	}
	return "", "", false
}

// ConfirmPasswordReset задает новый пароль по ссылке. Ссылка одноразовая.
func (s *Store) ConfirmPasswordReset(ctx context.Context, uid, token, password string) error {
	id, err := DecodeUID(uid)
	if err != nil {
		return ErrInvalidResetToken
	}

	s.mu.RLock()
	owner, ok := s.resets[token]
	s.mu.RUnlock()
	if !ok || owner != id {
		return ErrInvalidResetToken
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.resets[token]; !ok {
		return ErrInvalidResetToken
	}
	delete(s.resets, token)
	s.users[id].PasswordHash = hash
	return nil
}

// EncodeUID кодирует идентификатор пользователя для ссылки сброса пароля.
func EncodeUID(id int64) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(id, 10)))
}

// DecodeUID - обратное к EncodeUID.
func DecodeUID(uid string) (int64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(uid)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(string(raw), 10, 64)
}

// rating возвращает среднюю оценку и число отзывов; вызывается под s.mu.
func (s *Store) rating(productID int64) (float64, int) {
	var sum, n int
	for _, r := range s.reviews {
		if r.ProductID == productID {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return float64(sum) / float64(n), n
}

func (s *Store) summary(p *Product) ProductSummary {
	avg, n := s.rating(p.ID)
	return p.Summary(avg, n)
}

// Product возвращает карточку товара с отзывами и похожими товарами.
func (s *Store) Product(id int64) (*ProductDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}

	avg, _ := s.rating(id)
	detail := &ProductDetail{
		ID:                 p.ID,
		Name:               p.Name,
		MainImage:          p.MainImage,
		Description:        p.Description,
		DescriptionPoints:  strings.Split(p.Description, "*"),
		OriginalPrice:      p.OriginalPrice,
		DiscountPercentage: p.DiscountPercentage,
		DiscountedPrice:    p.DiscountedPrice(),
		AverageRating:      avg,
		Stock:              p.Stock,
		Reviews:            s.productReviews(id),
	}
	for _, other := range s.sortedProducts() {
		if other.ID != id {
			detail.SimilarProducts = append(detail.SimilarProducts, s.summary(other))
		}
	}
	return detail, nil
}

func (s *Store) sortedProducts() []*Product {
	out := make([]*Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b *Product) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// productReviews возвращает отзывы от новых к старым; вызывается под s.mu.
func (s *Store) productReviews(productID int64) []Review {
	out := []Review{}
	for i := len(s.reviews) - 1; i >= 0; i-- {
		if s.reviews[i].ProductID == productID {
			out = append(out, s.reviews[i])
		}
	}
	return out
}

// Reviews возвращает отзывы о товаре.
func (s *Store) Reviews(productID int64) ([]Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.products[productID]; !ok {
		return nil, ErrProductNotFound
	}
	return s.productReviews(productID), nil
}

// AddReview добавляет отзыв. Один пользователь оставляет не больше одного отзыва на товар.
func (s *Store) AddReview(userID, productID int64, rating int, text string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[productID]; !ok {
		return ErrProductNotFound
	}
	for _, r := range s.reviews {
		if r.ProductID == productID && r.UserID == userID {
			return ErrDuplicateReview
		}
	}

	s.reviews = append(s.reviews, Review{
		ID:        s.id(),
		ProductID: productID,
		UserID:    userID,
		User:      s.users[userID].Username,
		Rating:    rating,
		Text:      text,
		CreatedAt: s.now(),
	})
	return nil
}

// SearchResult - найденный товар.
type SearchResult struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price Money  `json:"price"`
}

// Search ищет товары по вхождению в название или описание без учета регистра.
func (s *Store) Search(query string) []SearchResult {
	q := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []SearchResult{}
	for _, p := range s.sortedProducts() {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, SearchResult{ID: p.ID, Name: p.Name, Price: p.DiscountedPrice()})
		}
	}
	return out
}

// MaxSuggestions ограничивает число подсказок поиска.
const MaxSuggestions = 10

// Suggestions возвращает короткие названия товаров, содержащие query.
func (s *Store) Suggestions(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []string{}
	if q == "" {
		return out
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.sortedProducts() {
		if strings.Contains(strings.ToLower(p.ShortName), q) {
			out = append(out, p.ShortName)
			if len(out) == MaxSuggestions {
				break
			}
		}
	}
	return out
}

// Cart возвращает корзину пользователя с итогами.
func (s *Store) Cart(userID int64) Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart(userID)
}

func (s *Store) cart(userID int64) Cart {
	c := Cart{Items: []CartItem{}}
	for _, line := range s.carts[userID] {
		p := s.products[line.productID]
		c.Items = append(c.Items, CartItem{Product: s.summary(p), Quantity: line.quantity})
		c.TotalDiscountedPrice += p.DiscountedPrice() * Money(line.quantity)
		c.TotalDiscount += (p.OriginalPrice - p.DiscountedPrice()) * Money(line.quantity)
	}
	return c
}

// AddToCart добавляет товар; если он уже в корзине, количество растет на единицу.
func (s *Store) AddToCart(userID, productID int64) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return nil, ErrProductNotFound
	}
	if p.Stock == 0 {
		return nil, ErrOutOfStock
	}

	lines := s.carts[userID]
	for i := range lines {
		if lines[i].productID == productID {
			lines[i].quantity++
			out := *p
			return &out, nil
		}
	}
	s.carts[userID] = append(lines, cartLine{productID: productID, quantity: 1})
	out := *p
	return &out, nil
}

// UpdateCart задает количество товара и возвращает его цену и обновленную корзину.
func (s *Store) UpdateCart(userID, productID int64, quantity int) (Money, Cart, error) {
	if quantity < 1 {
		return 0, Cart{}, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return 0, Cart{}, ErrProductNotFound
	}

	lines := s.carts[userID]
	for i := range lines {
		if lines[i].productID == productID {
			lines[i].quantity = quantity
			return p.DiscountedPrice(), s.cart(userID), nil
		}
	}
	return 0, Cart{}, ErrNotInCart
}

// RemoveFromCart удаляет товар из корзины. Отсутствие товара в корзине не ошибка.
func (s *Store) RemoveFromCart(userID, productID int64) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return nil, ErrProductNotFound
	}
	s.carts[userID] = slices.DeleteFunc(s.carts[userID], func(l cartLine) bool {
		return l.productID == productID
	})
	out := *p
	return &out, nil
}

// Checkout превращает корзину в заказ и очищает ее.
func (s *Store) Checkout(userID int64, address string) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	order, err := s.placeOrder(userID, address, lines)
	if err != nil {
		return nil, err
	}
	delete(s.carts, userID)
	return order, nil
}

// BuyNow оформляет заказ на один товар, не трогая корзину.
func (s *Store) BuyNow(userID, productID int64, quantity int, address string) (*Order, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[productID]; !ok {
		return nil, ErrProductNotFound
	}
	return s.placeOrder(userID, address, []cartLine{{productID: productID, quantity: quantity}})
}

// placeOrder списывает остатки и сохраняет заказ; вызывается под s.mu.
func (s *Store) placeOrder(userID int64, address string, lines []cartLine) (*Order, error) {
	for _, l := range lines {
		if p := s.products[l.productID]; p.Stock < l.quantity {
			return nil, fmt.Errorf("%w: %s", ErrOutOfStock, p.Name)
		}
	}

	order := Order{
		ID:              s.id(),
		UserID:          userID,
		Status:          OrderStatusPending,
		OrderedAt:       s.now().UTC(),
		ShippingAddress: address,
	}
	for _, l := range lines {
		p := s.products[l.productID]
		p.Stock -= l.quantity
		price := p.DiscountedPrice()
		order.Items = append(order.Items, OrderItem{Product: p.Name, Quantity: l.quantity, Price: price})
		order.TotalPrice += price * Money(l.quantity)
	}
	s.orders = append(s.orders, order)
	return &order, nil
}

// Orders возвращает заказы пользователя от новых к старым.
func (s *Store) Orders(userID int64) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Order{}
	for i := len(s.orders) - 1; i >= 0; i-- {
		if s.orders[i].UserID == userID {
			out = append(out, s.orders[i])
		}
	}
	return out
}

// Order возвращает заказ пользователя. Чужой заказ неотличим от отсутствующего.
func (s *Store) Order(userID, orderID int64) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.ID == orderID && o.UserID == userID {
			out := o
			return &out, nil
		}
	}
	return nil, ErrOrderNotFound
}

// Wishlist возвращает избранное пользователя.
func (s *Store) Wishlist(userID int64) []WishlistItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []WishlistItem{}
	for _, e := range s.wishlists[userID] {
		out = append(out, WishlistItem{ID: e.id, Product: s.summary(s.products[e.productID])})
	}
	return out
}

// ToggleWishlist добавляет товар в избранное или убирает его. added true, если товар добавлен.
func (s *Store) ToggleWishlist(userID, productID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[productID]; !ok {
		return false, ErrProductNotFound
	}

	entries := s.wishlists[userID]
	if i := slices.IndexFunc(entries, func(e wishEntry) bool { return e.productID == productID }); i >= 0 {
		s.wishlists[userID] = slices.Delete(entries, i, i+1)
		return false, nil
	}
	s.wishlists[userID] = append(entries, wishEntry{id: s.id(), productID: productID})
	return true, nil
}

// RemoveFromWishlist убирает товар из избранного.
func (s *Store) RemoveFromWishlist(userID, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[productID]; !ok {
		return ErrProductNotFound
	}
	s.wishlists[userID] = slices.DeleteFunc(s.wishlists[userID], func(e wishEntry) bool {
		return e.productID == productID
	})
	return nil
}

// InWishlist сообщает, есть ли товар в избранном.
func (s *Store) InWishlist(userID, productID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.products[productID]; !ok {
		return false, ErrProductNotFound
	}
	return slices.ContainsFunc(s.wishlists[userID], func(e wishEntry) bool {
		return e.productID == productID
	}), nil
}

// Addresses возвращает сохраненные адреса пользователя.
func (s *Store) Addresses(userID int64) []Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Address{}, s.addresses[userID]...)
}

// Address возвращает сохраненный адрес пользователя.
func (s *Store) Address(userID, addressID int64) (*Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.addresses[userID] {
		if a.ID == addressID {
			out := a
			return &out, nil
		}
	}
	return nil, ErrAddressNotFound
}

// AddAddress сохраняет адрес и присваивает ему идентификатор.
func (s *Store) AddAddress(userID int64, a Address) (*Address, error) {
	if strings.TrimSpace(a.FullName) == "" || strings.TrimSpace(a.AddressLine1) == "" ||
		strings.TrimSpace(a.City) == "" || strings.TrimSpace(a.ZipCode) == "" || strings.TrimSpace(a.Country) == "" {
		return nil, ErrInvalidAddress
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = s.id()
	s.addresses[userID] = append(s.addresses[userID], a)
	return &a, nil
}

// DeleteAddress удаляет сохраненный адрес.
func (s *Store) DeleteAddress(userID, addressID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.addresses[userID])
	s.addresses[userID] = slices.DeleteFunc(s.addresses[userID], func(a Address) bool { return a.ID == addressID })
	if len(s.addresses[userID]) == before {
		return ErrAddressNotFound
	}
	return nil
}

// IsNotFound сообщает, означает ли ошибка отсутствующий объект.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrAddressNotFound)
}
