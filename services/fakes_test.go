package services_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/saikrishna7004/campus-360-backend/common/auth"
	"github.com/saikrishna7004/campus-360-backend/models"
	aws_pkg "github.com/saikrishna7004/campus-360-backend/pkg/aws"
	"github.com/saikrishna7004/campus-360-backend/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errBoom = errors.New("boom")

// --- Orders ---

type fakeOrderRepo struct {
	orders    []*models.Order
	createErr error
	findErr   error
	// beforeUpdate runs inside UpdateStatus, simulating a concurrent writer.
	beforeUpdate func(o *models.Order)
}

func (r *fakeOrderRepo) Create(_ context.Context, o *models.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	cp := *o
	r.orders = append(r.orders, &cp)
	return nil
}

func (r *fakeOrderRepo) FindByRef(_ context.Context, ref string) (*models.Order, error) {
	for _, o := range r.orders {
		if o.ID.Hex() == ref || o.OrderID == ref {
			cp := *o
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func matchesFilter(f models.OrderFilter, o *models.Order) bool {
	if f.User != nil && o.User != *f.User {
		return false
	}
	if f.Vendor != "" && o.Vendor != f.Vendor {
		return false
	}
	if len(f.Statuses) > 0 {
		ok := false
		for _, s := range f.Statuses {
			if s == o.Status {
				ok = true
			}
		}
		if !ok {
			return false
		}
	}
	if f.UpdatedAfter != nil && !o.UpdatedAt.After(*f.UpdatedAfter) {
		return false
	}
	if f.CreatedFrom != nil && o.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedBefore != nil && !o.CreatedAt.Before(*f.CreatedBefore) {
		return false
	}
	return true
}

func (r *fakeOrderRepo) matching(f models.OrderFilter) []models.Order {
	out := []models.Order{}
	for _, o := range r.orders {
		if matchesFilter(f, o) {
			out = append(out, *o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeOrderRepo) Find(_ context.Context, f models.OrderFilter, page repository.Page) ([]models.Order, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	out := r.matching(f)
	if page.Skip > 0 {
		if int(page.Skip) >= len(out) {
			return []models.Order{}, nil
		}
		out = out[page.Skip:]
	}
	if page.Limit > 0 && int(page.Limit) < len(out) {
		out = out[:page.Limit]
	}
	return out, nil
}

func (r *fakeOrderRepo) Count(_ context.Context, f models.OrderFilter) (int64, error) {
	return int64(len(r.matching(f))), nil
}

func (r *fakeOrderRepo) Summarize(_ context.Context, f models.OrderFilter) (models.HistorySummary, error) {
	var s models.HistorySummary
	for _, o := range r.matching(f) {
		s.TotalOrders++
		s.TotalRevenue += o.TotalAmount
	}
	if s.TotalOrders > 0 {
		s.AverageOrderValue = s.TotalRevenue / float64(s.TotalOrders)
	}
	return s, nil
}

func (r *fakeOrderRepo) SumSales(_ context.Context, f models.OrderFilter) (float64, error) {
	var total float64
	for _, o := range r.matching(f) {
		if len(f.Statuses) == 0 && o.Status == models.StatusCancelled {
			continue
		}
		total += o.TotalAmount
	}
	return total, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, from *models.OrderStatus, to models.OrderStatus, at time.Time) (*models.Order, error) {
	for _, o := range r.orders {
		if o.ID != id {
			continue
		}
		if r.beforeUpdate != nil {
			r.beforeUpdate(o)
		}
		if from != nil && o.Status != *from {
			return nil, repository.ErrNotFound
		}
		o.Status = to
		o.UpdatedAt = at
		cp := *o
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

// --- Vendors ---

type fakeVendorRepo struct {
	vendors map[models.VendorType]*models.Vendor
	err     error
}

func newFakeVendorRepo(available map[models.VendorType]bool) *fakeVendorRepo {
	r := &fakeVendorRepo{vendors: map[models.VendorType]*models.Vendor{}}
	for vt, ok := range available {
		r.vendors[vt] = &models.Vendor{ID: primitive.NewObjectID(), Type: vt, IsAvailable: ok}
	}
	return r
}

func (r *fakeVendorRepo) FindByType(_ context.Context, vt models.VendorType) (*models.Vendor, error) {
	if r.err != nil {
		return nil, r.err
	}
	v, ok := r.vendors[vt]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVendorRepo) FindOrCreate(_ context.Context, vt models.VendorType) (*models.Vendor, error) {
	if r.err != nil {
		return nil, r.err
	}
	if _, ok := r.vendors[vt]; !ok {
		r.vendors[vt] = &models.Vendor{ID: primitive.NewObjectID(), Type: vt}
	}
	cp := *r.vendors[vt]
	return &cp, nil
}

func (r *fakeVendorRepo) SetAvailability(_ context.Context, vt models.VendorType, available bool) (*models.Vendor, error) {
	if r.err != nil {
		return nil, r.err
	}
	if _, ok := r.vendors[vt]; !ok {
		r.vendors[vt] = &models.Vendor{ID: primitive.NewObjectID(), Type: vt}
	}
	r.vendors[vt].IsAvailable = available
	cp := *r.vendors[vt]
	return &cp, nil
}

// --- Users ---

type fakeUserRepo struct {
	users     map[primitive.ObjectID]*models.User
	createErr error
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	out := []models.User{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			cp := *u
			cp.Password = ""
			out = append(out, cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindByStatuses(_ context.Context, statuses []models.UserStatus) ([]models.User, error) {
	out := []models.User{}
	for _, u := range r.users {
		for _, s := range statuses {
			if u.Status == s {
				out = append(out, *u)
			}
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.UserStatus, at time.Time) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Status = status
	u.UpdatedAt = at
	cp := *u
	return &cp, nil
}

// --- Carts ---

type fakeCartRepo struct {
	carts map[primitive.ObjectID]*models.Cart
	err   error
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[primitive.ObjectID]*models.Cart{}}
}

func (r *fakeCartRepo) Replace(_ context.Context, user primitive.ObjectID, items []models.CartItem, docs []models.CartDocument, at time.Time) error {
	if r.err != nil {
		return r.err
	}
	c, ok := r.carts[user]
	if !ok {
		c = &models.Cart{ID: primitive.NewObjectID(), User: user, CreatedAt: at}
		r.carts[user] = c
	}
	c.Items = items
	c.Documents = docs
	c.UpdatedAt = at
	return nil
}

func (r *fakeCartRepo) FindByUser(_ context.Context, user primitive.ObjectID) (*models.Cart, error) {
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.carts[user]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

// --- Products ---

type fakeProductRepo struct {
	products map[primitive.ObjectID]*models.Product
}

func newFakeProductRepo(products ...models.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[primitive.ObjectID]*models.Product{}}
	for i := range products {
		p := products[i]
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		r.products[p.ID] = &p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) FindByType(_ context.Context, t models.ProductType) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range r.products {
		if p.Type == t {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (r *fakeProductRepo) Replace(_ context.Context, p *models.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// --- News ---

type fakeNewsRepo struct {
	items map[primitive.ObjectID]*models.News
}

func newFakeNewsRepo() *fakeNewsRepo {
	return &fakeNewsRepo{items: map[primitive.ObjectID]*models.News{}}
}

func (r *fakeNewsRepo) FindActive(_ context.Context) ([]models.News, error) {
	out := []models.News{}
	for _, n := range r.items {
		if n.IsActive {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeNewsRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.News, error) {
	n, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *fakeNewsRepo) Create(_ context.Context, n *models.News) error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	cp := *n
	r.items[n.ID] = &cp
	return nil
}

func (r *fakeNewsRepo) Replace(_ context.Context, n *models.News) error {
	if _, ok := r.items[n.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *n
	r.items[n.ID] = &cp
	return nil
}

func (r *fakeNewsRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeNewsRepo) ClearBanners(_ context.Context, keep primitive.ObjectID, at time.Time) error {
	for id, n := range r.items {
		if id != keep && n.IsBanner {
			n.IsBanner = false
			n.UpdatedAt = at
		}
	}
	return nil
}

// --- Library ---

type fakeBookRepo struct {
	books map[primitive.ObjectID]*models.Book
}

func newFakeBookRepo(books ...*models.Book) *fakeBookRepo {
	r := &fakeBookRepo{books: map[primitive.ObjectID]*models.Book{}}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

func (r *fakeBookRepo) FindAll(_ context.Context) ([]models.Book, error) {
	out := []models.Book{}
	for _, b := range r.books {
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBookRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Book, error) {
	out := []models.Book{}
	for _, id := range ids {
		if b, ok := r.books[id]; ok {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookRepo) Create(_ context.Context, b *models.Book) error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *fakeBookRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.books[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) TakeCopy(_ context.Context, id primitive.ObjectID, _ time.Time) (bool, error) {
	b, ok := r.books[id]
	if !ok || b.Count <= 0 {
		return false, nil
	}
	b.Count--
	return true, nil
}

func (r *fakeBookRepo) ReturnCopy(_ context.Context, id primitive.ObjectID, _ time.Time) error {
	if b, ok := r.books[id]; ok {
		b.Count++
	}
	return nil
}

type fakeTrackRepo struct {
	tracks []*models.BookTrack
}

func (r *fakeTrackRepo) CountActive(_ context.Context, user primitive.ObjectID) (int64, error) {
	var n int64
	for _, t := range r.tracks {
		if t.UserID == user && t.ReturnDate == nil {
			n++
		}
	}
	return n, nil
}

func (r *fakeTrackRepo) FindActive(_ context.Context, user, book primitive.ObjectID) (*models.BookTrack, error) {
	for _, t := range r.tracks {
		if t.UserID == user && t.BookID == book && t.ReturnDate == nil {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeTrackRepo) ListActive(_ context.Context, user primitive.ObjectID) ([]models.BookTrack, error) {
	out := []models.BookTrack{}
	for _, t := range r.tracks {
		if t.UserID == user && t.ReturnDate == nil {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTrackRepo) Create(_ context.Context, t *models.BookTrack) error {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	cp := *t
	r.tracks = append(r.tracks, &cp)
	return nil
}

func (r *fakeTrackRepo) MarkReturned(_ context.Context, id primitive.ObjectID, at time.Time) (*models.BookTrack, error) {
	for _, t := range r.tracks {
		if t.ID == id && t.ReturnDate == nil {
			t.ReturnDate = &at
			cp := *t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

// --- Office ---

type fakeOfficeRepo struct {
	requests []*models.OfficeRequest
}

func (r *fakeOfficeRepo) Create(_ context.Context, req *models.OfficeRequest) error {
	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	cp := *req
	r.requests = append(r.requests, &cp)
	return nil
}

func (r *fakeOfficeRepo) FindPending(_ context.Context, userID, requestType string) (*models.OfficeRequest, error) {
	for _, req := range r.requests {
		if req.UserID == userID && req.Type == requestType && req.Status == models.OfficePending {
			cp := *req
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeOfficeRepo) FindByUser(_ context.Context, userID string) ([]models.OfficeRequest, error) {
	out := []models.OfficeRequest{}
	for _, req := range r.requests {
		if req.UserID == userID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeOfficeRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.OfficeRequestStatus, at time.Time) (*models.OfficeRequest, error) {
	for _, req := range r.requests {
		if req.ID == id {
			req.Status = status
			req.UpdatedAt = at
			cp := *req
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

// --- Publishers, metrics, presigner ---

type publishedMessage struct {
	topic   string
	key     []byte
	message []byte
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []publishedMessage
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, message []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, publishedMessage{topic: topic, message: message})
	return p.err
}

type keyedPublisher struct {
	recordingPublisher
}

func (p *keyedPublisher) PublishKeyed(_ context.Context, topic string, key, message []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, publishedMessage{topic: topic, key: key, message: message})
	return p.err
}

type fakePresigner struct {
	keys  []string
	types []string
	err   error
}

func (p *fakePresigner) PresignPut(_ context.Context, key, contentType string, expiry time.Duration) (*aws_pkg.PresignedUpload, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.keys = append(p.keys, key)
	p.types = append(p.types, contentType)
	return &aws_pkg.PresignedUpload{
		URL:       "https://uploads.example.com/" + key + "?sig=abc",
		Method:    "PUT",
		Key:       key,
		PublicURL: "https://cdn.example.com/" + key,
		ExpiresIn: int64(expiry.Seconds()),
	}, nil
}

// --- Principals ---

func studentPrincipal(id primitive.ObjectID) auth.Principal {
	return auth.Principal{ID: id.Hex(), Role: auth.RoleStudent, Name: "Asha"}
}

func adminPrincipal() auth.Principal {
	return auth.Principal{ID: primitive.NewObjectID().Hex(), Role: auth.RoleAdmin, Name: "Admin"}
}

func canteenPrincipal(kind string) auth.Principal {
	return auth.Principal{ID: primitive.NewObjectID().Hex(), Role: auth.RoleCanteen, Name: "Counter", Type: kind}
}

func vendorPrincipal(vt models.VendorType) auth.Principal {
	return auth.Principal{ID: primitive.NewObjectID().Hex(), Role: auth.RoleVendor, Name: "Vendor", VendorType: string(vt)}
}
