// Package repositorytest provides an in-memory catalog store for tests.
package repositorytest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/quochao170402/cekspek/internal/domain"
	"github.com/quochao170402/cekspek/internal/repository"
	"github.com/quochao170402/cekspek/internal/search"
)

// Memory keeps every table in maps guarded by one mutex. Calls counts the
// invocations per "table.Method" so tests can assert that a call never happened.
type Memory struct {
	mu      sync.Mutex
	brands  map[int64]domain.Brand
	phones  map[int64]domain.Phone
	reviews map[int64]domain.Review
	seq     int64
	calls   map[string]int
	now     func() time.Time

	// Fail makes the named call return the error.
	Fail map[string]error
}

func NewMemory() *Memory {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	return &Memory{
		brands:  map[int64]domain.Brand{},
		phones:  map[int64]domain.Phone{},
		reviews: map[int64]domain.Review{},
		calls:   map[string]int{},
		Fail:    map[string]error{},
		now: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Minute)
		},
	}
}

// Store returns a repository.Store backed by m.
func (m *Memory) Store() *repository.Store {
	return repository.NewStore("memory", brands{m}, phones{m}, reviews{m}, nil, nil)
}

func (m *Memory) Calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *Memory) enter(name string) (unlock func(), err error) {
	m.mu.Lock()
	m.calls[name]++
	if err := m.Fail[name]; err != nil {
		m.mu.Unlock()
		return nil, domain.NewStoreError(name, err)
	}
	return m.mu.Unlock, nil
}

func (m *Memory) nextID() int64 {
	m.seq++
	return m.seq
}

func (m *Memory) withBrand(p domain.Phone) domain.Phone {
	if b, ok := m.brands[p.BrandID]; ok {
		p.Brand = &b
	}
	return p
}

type brands struct{ m *Memory }

func (r brands) sorted() []domain.Brand {
	out := make([]domain.Brand, 0, len(r.m.brands))
	for _, b := range r.m.brands {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r brands) List(ctx context.Context) ([]domain.Brand, error) {
	unlock, err := r.m.enter("brands.List")
	if err != nil {
		return nil, err
	}
	defer unlock()
	return r.sorted(), nil
}

func (r brands) ListWithCounts(ctx context.Context) ([]domain.BrandWithCount, error) {
	unlock, err := r.m.enter("brands.ListWithCounts")
	if err != nil {
		return nil, err
	}
	defer unlock()
	var out []domain.BrandWithCount
	for _, b := range r.sorted() {
		var n int64
		for _, p := range r.m.phones {
			if p.BrandID == b.ID {
				n++
			}
		}
		out = append(out, domain.BrandWithCount{Brand: b, PhoneCount: n})
	}
	return out, nil
}

func (r brands) GetByID(ctx context.Context, id int64) (*domain.Brand, error) {
	unlock, err := r.m.enter("brands.GetByID")
	if err != nil {
		return nil, err
	}
	defer unlock()
	b, ok := r.m.brands[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r brands) unique(b *domain.Brand) error {
	for _, other := range r.m.brands {
		if other.ID != b.ID && (strings.EqualFold(other.Name, b.Name) || other.Slug == b.Slug) {
			return domain.NewStoreError("save brand", fmt.Errorf("%w: brand %q", repository.ErrDuplicate, b.Name))
		}
	}
	return nil
}

func (r brands) Create(ctx context.Context, b *domain.Brand) error {
	unlock, err := r.m.enter("brands.Create")
	if err != nil {
		return err
	}
	defer unlock()
	if err := r.unique(b); err != nil {
		return err
	}
	b.ID = r.m.nextID()
	b.CreatedAt = r.m.now()
	b.UpdatedAt = b.CreatedAt
	r.m.brands[b.ID] = *b
	return nil
}

func (r brands) Update(ctx context.Context, b *domain.Brand) error {
	unlock, err := r.m.enter("brands.Update")
	if err != nil {
		return err
	}
	defer unlock()
	if err := r.unique(b); err != nil {
		return err
	}
	b.UpdatedAt = r.m.now()
	r.m.brands[b.ID] = *b
	return nil
}

func (r brands) Delete(ctx context.Context, id int64) error {
	unlock, err := r.m.enter("brands.Delete")
	if err != nil {
		return err
	}
	defer unlock()
	delete(r.m.brands, id)
	return nil
}

func (r brands) Count(ctx context.Context) (int64, error) {
	unlock, err := r.m.enter("brands.Count")
	if err != nil {
		return 0, err
	}
	defer unlock()
	return int64(len(r.m.brands)), nil
}

type phones struct{ m *Memory }

func (r phones) all() []domain.Phone {
	out := make([]domain.Phone, 0, len(r.m.phones))
	for _, p := range r.m.phones {
		out = append(out, r.m.withBrand(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r phones) List(ctx context.Context, f repository.PhoneFilter) ([]domain.Phone, error) {
	unlock, err := r.m.enter("phones.List")
	if err != nil {
		return nil, err
	}
	defer unlock()
	var out []domain.Phone
	for _, p := range r.all() {
		if f.BrandID != nil && p.BrandID != *f.BrandID {
			continue
		}
		if f.Featured != nil && p.IsFeatured != *f.Featured {
			continue
		}
		out = append(out, p)
	}
	if f.Sort == repository.SortNewest {
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	} else {
		search.SortByName(out)
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r phones) GetByID(ctx context.Context, id int64) (*domain.Phone, error) {
	unlock, err := r.m.enter("phones.GetByID")
	if err != nil {
		return nil, err
	}
	defer unlock()
	p, ok := r.m.phones[id]
	if !ok {
		return nil, nil
	}
	p = r.m.withBrand(p)
	return &p, nil
}

func (r phones) GetBySlug(ctx context.Context, slug string) (*domain.Phone, error) {
	unlock, err := r.m.enter("phones.GetBySlug")
	if err != nil {
		return nil, err
	}
	defer unlock()
	for _, p := range r.all() {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, nil
}

func (r phones) Search(ctx context.Context, query string, limit int) ([]domain.Phone, error) {
	unlock, err := r.m.enter("phones.Search")
	if err != nil {
		return nil, err
	}
	defer unlock()
	out := search.Filter(query, r.all())
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r phones) CountByBrand(ctx context.Context, brandID int64) (int64, error) {
	unlock, err := r.m.enter("phones.CountByBrand")
	if err != nil {
		return 0, err
	}
	defer unlock()
	var n int64
	for _, p := range r.m.phones {
		if p.BrandID == brandID {
			n++
		}
	}
	return n, nil
}

func (r phones) Count(ctx context.Context) (int64, error) {
	unlock, err := r.m.enter("phones.Count")
	if err != nil {
		return 0, err
	}
	defer unlock()
	return int64(len(r.m.phones)), nil
}

func (r phones) save(p *domain.Phone) error {
	if _, ok := r.m.brands[p.BrandID]; !ok {
		return domain.NewStoreError("save phone", fmt.Errorf("insert or update on table \"phones\" violates foreign key constraint"))
	}
	for _, other := range r.m.phones {
		if other.ID != p.ID && other.Slug == p.Slug {
			return domain.NewStoreError("save phone", fmt.Errorf("%w: phone slug %q", repository.ErrDuplicate, p.Slug))
		}
	}
	stored := *p
	stored.Brand = nil
	r.m.phones[p.ID] = stored
	return nil
}

func (r phones) Create(ctx context.Context, p *domain.Phone) error {
	unlock, err := r.m.enter("phones.Create")
	if err != nil {
		return err
	}
	defer unlock()
	p.ID = r.m.nextID()
	p.CreatedAt = r.m.now()
	p.UpdatedAt = p.CreatedAt
	if err := r.save(p); err != nil {
		p.ID = 0
		return err
	}
	return nil
}

func (r phones) Update(ctx context.Context, p *domain.Phone) error {
	unlock, err := r.m.enter("phones.Update")
	if err != nil {
		return err
	}
	defer unlock()
	p.UpdatedAt = r.m.now()
	return r.save(p)
}

func (r phones) Delete(ctx context.Context, id int64) error {
	unlock, err := r.m.enter("phones.Delete")
	if err != nil {
		return err
	}
	defer unlock()
	for rid, rv := range r.m.reviews {
		if rv.PhoneID == id {
			delete(r.m.reviews, rid)
		}
	}
	delete(r.m.phones, id)
	return nil
}

type reviews struct{ m *Memory }

func (r reviews) newest(match func(domain.Review) bool) []domain.Review {
	var out []domain.Review
	for _, rv := range r.m.reviews {
		if match(rv) {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r reviews) ListByPhone(ctx context.Context, phoneID int64) ([]domain.Review, error) {
	unlock, err := r.m.enter("reviews.ListByPhone")
	if err != nil {
		return nil, err
	}
	defer unlock()
	return r.newest(func(rv domain.Review) bool { return rv.PhoneID == phoneID }), nil
}

func (r reviews) ListByPhones(ctx context.Context, ids []int64) ([]domain.Review, error) {
	unlock, err := r.m.enter("reviews.ListByPhones")
	if err != nil {
		return nil, err
	}
	defer unlock()
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return r.newest(func(rv domain.Review) bool { return set[rv.PhoneID] }), nil
}

func (r reviews) List(ctx context.Context, f repository.ReviewFilter) ([]domain.ReviewWithPhone, error) {
	unlock, err := r.m.enter("reviews.List")
	if err != nil {
		return nil, err
	}
	defer unlock()
	var out []domain.ReviewWithPhone
	for _, rv := range r.newest(func(rv domain.Review) bool { return f.Rating == nil || rv.Rating == *f.Rating }) {
		p := r.m.phones[rv.PhoneID]
		out = append(out, domain.ReviewWithPhone{Review: rv, PhoneName: p.Name, PhoneSlug: p.Slug})
	}
	return out, nil
}

func (r reviews) Create(ctx context.Context, rv *domain.Review) error {
	unlock, err := r.m.enter("reviews.Create")
	if err != nil {
		return err
	}
	defer unlock()
	if _, ok := r.m.phones[rv.PhoneID]; !ok {
		return domain.NewStoreError("create review", fmt.Errorf("insert or update on table \"reviews\" violates foreign key constraint"))
	}
	rv.ID = r.m.nextID()
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = r.m.now()
	}
	r.m.reviews[rv.ID] = *rv
	return nil
}

func (r reviews) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	unlock, err := r.m.enter("reviews.GetByID")
	if err != nil {
		return nil, err
	}
	defer unlock()
	rv, ok := r.m.reviews[id]
	if !ok {
		return nil, nil
	}
	return &rv, nil
}

func (r reviews) Delete(ctx context.Context, id int64) error {
	unlock, err := r.m.enter("reviews.Delete")
	if err != nil {
		return err
	}
	defer unlock()
	delete(r.m.reviews, id)
	return nil
}

func (r reviews) Count(ctx context.Context) (int64, error) {
	unlock, err := r.m.enter("reviews.Count")
	if err != nil {
		return 0, err
	}
	defer unlock()
	return int64(len(r.m.reviews)), nil
}

var (
	_ repository.BrandRepository  = brands{}
	_ repository.PhoneRepository  = phones{}
	_ repository.ReviewRepository = reviews{}
)
