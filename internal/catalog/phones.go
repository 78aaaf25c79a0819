package catalog

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/quochao170402/cekspek/internal/compare"
	"github.com/quochao170402/cekspek/internal/domain"
	"github.com/quochao170402/cekspek/internal/rating"
	"github.com/quochao170402/cekspek/internal/repository"
)

const (
	DefaultPhoneLimit = 50
	MaxPhoneLimit     = 200
)

type PhoneQuery struct {
	BrandID  *int64
	Featured *bool
	Limit    int
}

// PhoneDetail is everything the detail page shows for one phone.
type PhoneDetail struct {
	Phone   domain.Phone   `json:"phone"`
	Rating  rating.Summary `json:"rating"`
	Reviews []ReviewView   `json:"reviews"`
	Sheet   compare.Sheet  `json:"spec_sheet"`
}

// AdminPhoneList is the filtered admin table plus the unfiltered total.
type AdminPhoneList struct {
	Phones []domain.Phone `json:"phones"`
	Total  int            `json:"total"`
}

func phoneNotFound(key string) error {
	return &domain.NotFoundError{Entity: "HP", Key: key}
}

func (s *Service) ListPhones(ctx context.Context, q PhoneQuery) ([]domain.Phone, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultPhoneLimit
	}
	limit = min(limit, MaxPhoneLimit)
	phones, err := s.phones.List(ctx, repository.PhoneFilter{
		BrandID:  q.BrandID,
		Featured: q.Featured,
		Sort:     repository.SortNewest,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}
	if phones == nil {
		phones = []domain.Phone{}
	}
	return phones, nil
}

func (s *Service) GetPhone(ctx context.Context, id int64) (*domain.Phone, error) {
	phone, err := s.phones.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if phone == nil {
		return nil, phoneNotFound(strconv.FormatInt(id, 10))
	}
	return phone, nil
}

func (s *Service) GetPhoneBySlug(ctx context.Context, slug string) (*domain.Phone, error) {
	phone, err := s.phones.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if phone == nil {
		return nil, phoneNotFound(slug)
	}
	return phone, nil
}

func (s *Service) PhoneDetail(ctx context.Context, slug string) (*PhoneDetail, error) {
	phone, err := s.GetPhoneBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByPhone(ctx, phone.ID)
	if err != nil {
		return nil, err
	}
	return &PhoneDetail{
		Phone:   *phone,
		Rating:  rating.Summarize(reviews),
		Reviews: s.reviewViews(reviews),
		Sheet:   compare.SpecSheet(*phone),
	}, nil
}

// AdminListPhones lists newest first, narrowed by a substring of the phone
// or brand name.
func (s *Service) AdminListPhones(ctx context.Context, query string) (*AdminPhoneList, error) {
	all, err := s.phones.List(ctx, repository.PhoneFilter{Sort: repository.SortNewest})
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	out := &AdminPhoneList{Phones: make([]domain.Phone, 0, len(all)), Total: len(all)}
	for _, p := range all {
		if q == "" ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.BrandName()), q) {
			out.Phones = append(out.Phones, p)
		}
	}
	return out, nil
}

func (s *Service) requireBrand(ctx context.Context, id int64) error {
	brand, err := s.brands.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if brand == nil {
		return &domain.ValidationError{Field: "brand_id", Message: "Brand tidak ditemukan"}
	}
	return nil
}

func (s *Service) CreatePhone(ctx context.Context, in domain.PhoneInput) (*domain.Phone, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireBrand(ctx, in.BrandID); err != nil {
		return nil, err
	}
	var phone domain.Phone
	in.Apply(&phone)
	if err := s.phones.Create(ctx, &phone); err != nil {
		return nil, err
	}
	s.logger.Info("phone created", zap.Int64("id", phone.ID), zap.String("slug", phone.Slug))
	return s.GetPhone(ctx, phone.ID)
}

func (s *Service) UpdatePhone(ctx context.Context, id int64, in domain.PhoneInput) (*domain.Phone, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	phone, err := s.GetPhone(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.BrandID != phone.BrandID {
		if err := s.requireBrand(ctx, in.BrandID); err != nil {
			return nil, err
		}
	}
	in.Apply(phone)
	phone.Brand = nil
	if err := s.phones.Update(ctx, phone); err != nil {
		return nil, err
	}
	return s.GetPhone(ctx, id)
}

// DeletePhone removes the phone and its reviews.
func (s *Service) DeletePhone(ctx context.Context, id int64) error {
	if _, err := s.GetPhone(ctx, id); err != nil {
		return err
	}
	if err := s.phones.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("phone deleted", zap.Int64("id", id))
	return nil
}
