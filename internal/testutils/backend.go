package testutils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

var signingKey = []byte("storefront-test-key")

type fakeUser struct {
	models.User
	password string
}

// Backend is an in-memory stand-in for the storefront REST API.
type Backend struct {
	Server *httptest.Server

	mu       sync.Mutex
	nextID   int64
	users    map[int64]*fakeUser
	products map[int64]*models.Product
	carts    map[int64][]models.CartLine
	orders   []models.Order
	reviews  map[int64][]models.ReviewRequest
	requests []string
	now      func() time.Time
}

func NewBackend(t testing.TB) *Backend {
	t.Helper()

	b := &Backend{
		nextID:   100,
		users:    make(map[int64]*fakeUser),
		products: make(map[int64]*models.Product),
		carts:    make(map[int64][]models.CartLine),
		reviews:  make(map[int64][]models.ReviewRequest),
		now:      time.Now,
	}

	b.Server = httptest.NewServer(b.routes())
	t.Cleanup(b.Server.Close)

	return b
}

func (b *Backend) URL() string {
	return b.Server.URL
}

// Requests lists "METHOD /path?query" for every call received so far.
func (b *Backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return slices.Clone(b.requests)
}

func (b *Backend) id() int64 {
	b.nextID++
	return b.nextID
}

func (b *Backend) AddUser(email, password, role string) models.User {
	b.mu.Lock()
	defer b.mu.Unlock()

	user := &fakeUser{
		User:     models.User{ID: b.id(), Username: strings.Split(email, "@")[0], Email: email, Role: role},
		password: password,
	}
	b.users[user.ID] = user

	return user.User
}

func (b *Backend) AddProduct(p models.Product) models.Product {
	b.mu.Lock()
	defer b.mu.Unlock()

	if p.ID == 0 {
		p.ID = b.id()
	}
	b.products[p.ID] = &p

	return p
}

func (b *Backend) AddOrder(o models.Order) models.Order {
	b.mu.Lock()
	defer b.mu.Unlock()

	if o.ID == 0 {
		o.ID = b.id()
	}
	b.orders = append(b.orders, o)

	return o
}

func (b *Backend) CartOf(userID int64) []models.CartLine {
	b.mu.Lock()
	defer b.mu.Unlock()

	return slices.Clone(b.carts[userID])
}

func (b *Backend) Reviews(productID int64) []models.ReviewRequest {
	b.mu.Lock()
	defer b.mu.Unlock()

	return slices.Clone(b.reviews[productID])
}

// IssueToken signs a token for userID that expires after ttl.
func IssueToken(userID int64, ttl time.Duration) string {
	claims := &models.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)

	return token
}

func (b *Backend) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /login", b.login)
	mux.HandleFunc("POST /register", b.register)

	mux.HandleFunc("GET /users/me", b.authed(b.me))
	mux.HandleFunc("PUT /users/me", b.authed(b.updateMe))
	mux.HandleFunc("DELETE /users/me", b.authed(b.deleteMe))
	mux.HandleFunc("PUT /users/me/password", b.authed(b.changePassword))
	mux.HandleFunc("GET /users", b.admin(b.listUsers))
	mux.HandleFunc("GET /users/stats", b.admin(b.userStats))
	mux.HandleFunc("POST /users/create_user", b.admin(b.createUser))
	mux.HandleFunc("PUT /users/{id}", b.admin(b.updateUser))
	mux.HandleFunc("DELETE /users/{id}", b.admin(b.deleteUser))
	mux.HandleFunc("POST /admin/temp-password", b.admin(b.tempPassword))

	mux.HandleFunc("GET /products", b.listProducts)
	mux.HandleFunc("GET /products/categories", b.categories)
	mux.HandleFunc("GET /products/{id}", b.getProduct)
	mux.HandleFunc("POST /products", b.admin(b.saveProduct))
	mux.HandleFunc("PUT /products/{id}", b.admin(b.saveProduct))
	mux.HandleFunc("DELETE /products/{id}", b.admin(b.deleteProduct))
	mux.HandleFunc("POST /products/cart", b.authed(b.addToCart))
	mux.HandleFunc("POST /products/{id}/review", b.authed(b.review))

	mux.HandleFunc("GET /cart", b.authed(b.getCart))
	mux.HandleFunc("DELETE /cart", b.authed(b.clearCart))
	mux.HandleFunc("PUT /cart/{id}", b.authed(b.updateCartLine))
	mux.HandleFunc("DELETE /cart/{id}", b.authed(b.deleteCartLine))

	mux.HandleFunc("POST /orders", b.authed(b.createOrder))
	mux.HandleFunc("GET /orders", b.admin(b.listOrders))
	mux.HandleFunc("GET /orders/my_orders", b.authed(b.myOrders))
	mux.HandleFunc("PUT /orders/{id}", b.admin(b.updateOrder))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		entry := r.Method + " " + r.URL.Path
		if r.URL.RawQuery != "" {
			entry += "?" + r.URL.RawQuery
		}
		b.requests = append(b.requests, entry)
		b.mu.Unlock()

		mux.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func detail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"detail": message})
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

type authedHandler func(w http.ResponseWriter, r *http.Request, user *fakeUser)

func (b *Backend) authed(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			detail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		claims := &models.Claims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) { return signingKey, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			detail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		b.mu.Lock()
		user, found := b.users[claims.UserID]
		b.mu.Unlock()

		if !found {
			detail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		next(w, r, user)
	}
}

func (b *Backend) admin(next authedHandler) http.HandlerFunc {
	return b.authed(func(w http.ResponseWriter, r *http.Request, user *fakeUser) {
		if user.Role != models.RoleAdmin {
			detail(w, http.StatusForbidden, "Недостаточно прав")
			return
		}

		next(w, r, user)
	})
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil || r.PostForm.Get("grant_type") != "password" {
		detail(w, http.StatusUnprocessableEntity, "invalid form")
		return
	}

	email, password := r.PostForm.Get("username"), r.PostForm.Get("password")

	b.mu.Lock()
	var match *fakeUser
	for _, user := range b.users {
		if user.Email == email && user.password == password {
			match = user
		}
	}
	b.mu.Unlock()

	if match == nil {
		detail(w, http.StatusForbidden, "Invalid Credentials")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": IssueToken(match.ID, time.Hour),
		"token_type":   "bearer",
		"role":         match.Role,
	})
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		detail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, user := range b.users {
		if user.Email == req.Email {
			detail(w, http.StatusBadRequest, "Пользователь с таким email уже существует")
			return
		}
	}

	user := &fakeUser{
		User:     models.User{ID: b.id(), Username: req.Username, LastName: req.LastName, Email: req.Email, Role: models.RoleUser},
		password: req.Password,
	}
	b.users[user.ID] = user

	writeJSON(w, http.StatusCreated, user.User)
}

func (b *Backend) me(w http.ResponseWriter, _ *http.Request, user *fakeUser) {
	writeJSON(w, http.StatusOK, user.User)
}

func (b *Backend) updateMe(w http.ResponseWriter, r *http.Request, user *fakeUser) {
	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		detail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}

	b.mu.Lock()
	user.Username, user.LastName, user.Email = req.Username, req.LastName, req.Email
	if req.Password != "" {
		user.password = req.Password
	}
	out := user.User
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) deleteMe(w http.ResponseWriter, _ *http.Request, user *fakeUser) {
	b.mu.Lock()
	delete(b.users, user.ID)
	b.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) changePassword(w http.ResponseWriter, r *http.Request, user *fakeUser) {
	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		detail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if req.CurrentPassword != user.password {
		detail(w, http.StatusBadRequest, "Неверный текущий пароль")
		return
	}
	user.password = req.NewPassword

	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

func (b *Backend) listUsers(w http.ResponseWriter, _ *http.Request, _ *fakeUser) {
	b.mu.Lock()
	users := make([]models.User, 0, len(b.users))
	for _, user := range b.users {
		users = append(users, user.User)
	}
	b.mu.Unlock()

	slices.SortFunc(users, func(a, c models.User) int { return int(a.ID - c.ID) })
	writeJSON(w, http.StatusOK, users)
}

func (b *Backend) userStats(w http.ResponseWriter, _ *http.Request, _ *fakeUser) {
	b.mu.Lock()
	stats := make([]models.UserStats, 0, len(b.users))
	for _, user := range b.users {
		row := models.UserStats{User: user.User}
		for _, order := range b.orders {
			if order.UserID == user.ID {
				row.Orders++
				row.TotalSpent += order.TotalPrice
			}
		}
		stats = append(stats, row)
	}
	b.mu.Unlock()

	slices.SortFunc(stats, func(a, c models.UserStats) int { return int(a.ID - c.ID) })
	writeJSON(w, http.StatusOK, stats)
}

func (b *Backend) createUser(w http.ResponseWriter, r *http.Request, _ *fakeUser) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		detail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}

	b.mu.Lock()
	user := &fakeUser{
		User:     models.User{ID: b.id(), Username: req.Username, LastName: req.LastName, Email: req.Email, Role: models.RoleUser},
		password: req.Password,
	}
	b.users[user.ID] = user
	b.mu.Unlock()

	writeJSON(w, http.StatusCreated, user.User)
}

func (b *Backend) updateUser(w http.ResponseWriter, r *http.Request, _ *fakeUser) {
	id, _ := pathID(r)

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		detail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	user, ok := b.users[id]
	if !ok {
		detail(w, http.StatusNotFound, "Пользователь не найден")
		return
	}
	user.Username, user.LastName, user.Email, user.Role = req.Username, req.LastName, req.Email, req.Role

	writeJSON(w, http.StatusOK, user.User)
}

func (b *Backend) deleteUser(w http.ResponseWriter, r *http.Request, _ *fakeUser) {
	id, _ := pathID(r)

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.users[id]; !ok {
		detail(w, http.StatusNotFound, "Пользователь не найден")
		return
	}
	delete(b.users, id)

	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) tempPassword(w http.ResponseWriter, r *http.Request, _ *fakeUser) {
	var req models.TempPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		detail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, user := range b.users {
		if user.Email == req.Email {
			user.password = "Temp1234"
			writeJSON(w, http.StatusOK, models.TempPasswordResponse{Email: req.Email, TempPassword: user.password})
			return
		}
	}

	detail(w, http.StatusNotFound, "Пользователь не найден")
}

func (b *Backend) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := strings.ToLower(q.Get("search"))
	categories := q["categories"]
	minPrice, _ := strconv.ParseFloat(q.Get("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(q.Get("max_price"), 64)

	if q.Has("min_price") && q.Has("max_price") && minPrice > maxPrice {
		detail(w, http.StatusBadRequest, "min_price не может быть больше max_price")
		return
	}

	b.mu.Lock()
	products := make([]models.Product, 0, len(b.products))
	for _, p := range b.products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if len(categories) > 0 && !slices.Contains(categories, p.Category) {
			continue
		}
		if q.Has("min_price") && p.Price < minPrice {
			continue
		}
		if q.Has("max_price") && p.Price > maxPrice {
			continue
		}
		if q.Get("in_stock") == "true" && p.Quantity <= 0 {
			continue
		}
		products = append(products, *p)
	}
	b.mu.Unlock()

	desc := q.Get("sort_order") != "asc"
	slices.SortStableFunc(products, func(a, c models.Product) int {
		var cmp int
		switch q.Get("sort_by") {
		case "price":
			cmp = compareFloat(a.Price, c.Price)
		case "name":
			cmp = strings.Compare(a.Name, c.Name)
		case "quantity":
			cmp = a.Quantity - c.Quantity
		case "":
			return int(a.ID - c.ID)
		}
		if desc {
			return -cmp
		}
		return cmp
	})

	writeJSON(w, http.StatusOK, products)
}

func compareFloat(a, c float64) int {
	switch {
	case a < c:
		return -1
	case a > c:
		return 1
	default:
		return 0
	}
}

func (b *Backend) categories(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	var categories []string
	for _, p := range b.products {
		if !slices.Contains(categories, p.Category) {
			categories = append(categories, p.Category)
		}
	}
	b.mu.Unlock()

	slices.Sort(categories)
	writeJSON(w, http.StatusOK, categories)
}

func (b *Backend) getProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)

	b.mu.Lock()
	p, ok := b.products[id]
	b.mu.Unlock()

	if !ok {
		detail(w, http.StatusNotFound, fmt.Sprintf("Товар с id: %d не был найден", id))
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (b *Backend) saveProduct(w http.ResponseWriter, r *http.Request, _ *fakeUser) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		detail(w, http.StatusUnprocessableEntity, "expected multipart form")
		return
	}

	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	quantity, _ := strconv.Atoi(r.FormValue("quantity"))

	b.mu.Lock()
	defer b.mu.Unlock()

	p := &models.Product{}
	status := http.StatusCreated

	if id, ok := pathID(r); ok {
		existing, found := b.products[id]
		if !found {
			detail(w, http.StatusNotFound, "Товар не найден")
			return
		}
		p = existing
		status = http.StatusOK
	} else {
		p.ID = b.id()
		b.products[p.ID] = p
	}

	p.Name = r.FormValue("name")
	p.Category = r.FormValue("category")
	p.Description = r.FormValue("description")
	p.Price = price
	p.Quantity = quantity

	if raw := r.FormValue("original_price"); raw != "" {
		original, _ := strconv.ParseFloat(raw, 64)
		p.OriginalPrice = &original
	}
	if raw := r.FormValue("discount"); raw != "" {
		discount, _ := strconv.Atoi(raw)
		p.Discount = &discount
	}

	if file, header, err := r.FormFile("image"); err == nil {
		_, _ = io.Copy(io.Discard, file)
		file.Close()
		p.ImageURL = "/static/images/" + header.Filename
	}

	writeJSON(w, status, p)
}

func (b *Backend) deleteProduct(w http.ResponseWriter, r *http.Request, _ *fakeUser) {
	id, _ := pathID(r)

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.products[id]; !ok {
		detail(w, http.StatusNotFound, "Товар не найден")
		return
	}
	delete(b.products, id)

	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) addToCart(w http.ResponseWriter, r *http.Request, user *fakeUser) {
	var req models.AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		detail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	product, ok := b.products[req.ProductID]
	if !ok {
		detail(w, http.StatusNotFound, fmt.Sprintf("Товар с id: %d не найден", req.ProductID))
		return
	}

	if product.Quantity < req.Quantity {
		detail(w, http.StatusBadRequest, "Недостаточно товара на складе")
		return
	}

	lines := b.carts[user.ID]
	for i := range lines {
		if lines[i].ProductID == req.ProductID {
			lines[i].Quantity = models.IntPtr(lines[i].Qty() + req.Quantity)
			writeJSON(w, http.StatusCreated, lines[i])
			return
		}
	}

	line := models.CartLine{
		ID:        b.id(),
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  models.IntPtr(req.Quantity),
		ImageURL:  product.ImageURL,
	}
	b.carts[user.ID] = append(lines, line)

	writeJSON(w, http.StatusCreated, line)
}

func (b *Backend) review(w http.ResponseWriter, r *http.Request, _ *fakeUser) {
	id, _ := pathID(r)

	var req models.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		detail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	product, ok := b.products[id]
	if !ok {
		detail(w, http.StatusNotFound, "Товар не найден")
		return
	}

	b.reviews[id] = append(b.reviews[id], req)

	var sum int
	for _, review := range b.reviews[id] {
		sum += review.Rating
	}
	product.ReviewsCount = len(b.reviews[id])
	product.AverageRating = float64(sum) / float64(product.ReviewsCount)

	writeJSON(w, http.StatusCreated, map[string]string{"message": "review saved"})
}

func (b *Backend) getCart(w http.ResponseWriter, _ *http.Request, user *fakeUser) {
	b.mu.Lock()
	lines := slices.Clone(b.carts[user.ID])
	b.mu.Unlock()

	if lines == nil {
		lines = []models.CartLine{}
	}

	writeJSON(w, http.StatusOK, lines)
}

func (b *Backend) clearCart(w http.ResponseWriter, _ *http.Request, user *fakeUser) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.carts[user.ID]) == 0 {
		detail(w, http.StatusNotFound, "Корзина пуста")
		return
	}
	delete(b.carts, user.ID)

	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) updateCartLine(w http.ResponseWriter, r *http.Request, user *fakeUser) {
	id, _ := pathID(r)
	quantity, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if err != nil {
		detail(w, http.StatusUnprocessableEntity, "quantity is required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	lines := b.carts[user.ID]
	i := slices.IndexFunc(lines, func(l models.CartLine) bool { return l.ID == id })
	if i < 0 {
		detail(w, http.StatusNotFound, "Товар не найден в вашей корзине")
		return
	}

	line := lines[i]
	if quantity <= 0 {
		b.carts[user.ID] = slices.Delete(lines, i, i+1)
	} else {
		line.Quantity = models.IntPtr(quantity)
		lines[i] = line
	}

	line.ImageURL = ""
	writeJSON(w, http.StatusOK, line)
}

func (b *Backend) deleteCartLine(w http.ResponseWriter, r *http.Request, user *fakeUser) {
	id, _ := pathID(r)

	b.mu.Lock()
	defer b.mu.Unlock()

	lines := b.carts[user.ID]
	i := slices.IndexFunc(lines, func(l models.CartLine) bool { return l.ID == id })
	if i < 0 {
		detail(w, http.StatusNotFound, "Товар не найден в вашей корзине")
		return
	}
	b.carts[user.ID] = slices.Delete(lines, i, i+1)

	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) createOrder(w http.ResponseWriter, r *http.Request, user *fakeUser) {
	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		detail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	lines := b.carts[user.ID]
	if len(lines) == 0 {
		detail(w, http.StatusBadRequest, "Корзина пуста")
		return
	}

	order := models.Order{
		ID:        b.id(),
		UserID:    user.ID,
		Status:    models.OrderStatusProcessing,
		Address:   req.Address,
		Phone:     req.Phone,
		CreatedAt: b.now().UTC(),
	}

	for _, line := range lines {
		order.Items = append(order.Items, models.OrderItem{
			ID:        b.id(),
			ProductID: line.ProductID,
			OrderID:   order.ID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Qty(),
		})
		order.TotalPrice += line.Price * float64(line.Qty())
	}

	b.orders = append(b.orders, order)

	writeJSON(w, http.StatusCreated, order)
}

func (b *Backend) filterOrders(r *http.Request, keep func(models.Order) bool) []models.Order {
	q := r.URL.Query()

	b.mu.Lock()
	defer b.mu.Unlock()

	orders := []models.Order{}
	for _, order := range b.orders {
		if !keep(order) {
			continue
		}
		if status := q.Get("search_by_status"); status != "" && !strings.Contains(strings.ToLower(string(order.Status)), strings.ToLower(status)) {
			continue
		}
		if name := q.Get("search_by_product_name"); name != "" && !slices.ContainsFunc(order.Items, func(i models.OrderItem) bool {
			return strings.Contains(strings.ToLower(i.Name), strings.ToLower(name))
		}) {
			continue
		}
		orders = append(orders, order)
	}

	return orders
}

func (b *Backend) listOrders(w http.ResponseWriter, r *http.Request, _ *fakeUser) {
	writeJSON(w, http.StatusOK, b.filterOrders(r, func(models.Order) bool { return true }))
}

func (b *Backend) myOrders(w http.ResponseWriter, r *http.Request, user *fakeUser) {
	writeJSON(w, http.StatusOK, b.filterOrders(r, func(o models.Order) bool { return o.UserID == user.ID }))
}

func (b *Backend) updateOrder(w http.ResponseWriter, r *http.Request, _ *fakeUser) {
	id, _ := pathID(r)

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		detail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.orders {
		if b.orders[i].ID == id {
			b.orders[i].Status = models.NormalizeOrderStatus(req.Status)
			writeJSON(w, http.StatusOK, b.orders[i])
			return
		}
	}

	detail(w, http.StatusNotFound, "Заказ не найден")
}
