package catalog

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/quochao170402/cekspek/internal/domain"
	"github.com/quochao170402/cekspek/internal/format"
	"github.com/quochao170402/cekspek/internal/rating"
	"github.com/quochao170402/cekspek/internal/repository"
)

type ReviewView struct {
	domain.Review
	Stars string `json:"stars"`
	Date  string `json:"date_label"`
}

type AdminReviewView struct {
	domain.ReviewWithPhone
	Stars string `json:"stars"`
	Date  string `json:"date_label"`
}

// AdminReviews holds the filtered list; Stats always covers every review.
type AdminReviews struct {
	Reviews []AdminReviewView `json:"reviews"`
	Stats   rating.Summary    `json:"stats"`
}

func (s *Service) reviewViews(reviews []domain.Review) []ReviewView {
	now := s.now()
	out := make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ReviewView{
			Review: r,
			Stars:  format.Stars(r.Rating),
			Date:   format.RelativeDate(r.CreatedAt, now),
		})
	}
	return out
}

func (s *Service) ListReviews(ctx context.Context, phoneID int64) ([]ReviewView, error) {
	if _, err := s.GetPhone(ctx, phoneID); err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByPhone(ctx, phoneID)
	if err != nil {
		return nil, err
	}
	return s.reviewViews(reviews), nil
}

// SubmitReview validates before touching the store.
func (s *Service) SubmitReview(ctx context.Context, phoneID int64, in domain.ReviewInput) (*domain.Review, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.GetPhone(ctx, phoneID); err != nil {
		return nil, err
	}
	review := in.ToReview(phoneID)
	if err := s.reviews.Create(ctx, &review); err != nil {
		return nil, err
	}
	s.logger.Info("review submitted", zap.Int64("phone_id", phoneID), zap.Int("rating", review.Rating))
	return &review, nil
}

func (s *Service) AdminListReviews(ctx context.Context, ratingFilter *int) (*AdminReviews, error) {
	if ratingFilter != nil && (*ratingFilter < 1 || *ratingFilter > 5) {
		return nil, &domain.ValidationError{Field: "rating", Message: "Rating harus antara 1 dan 5"}
	}
	all, err := s.reviews.List(ctx, repository.ReviewFilter{})
	if err != nil {
		return nil, err
	}

	plain := make([]domain.Review, 0, len(all))
	for _, r := range all {
		plain = append(plain, r.Review)
	}
	out := &AdminReviews{
		Reviews: make([]AdminReviewView, 0, len(all)),
		Stats:   rating.Summarize(plain),
	}

	now := s.now()
	for _, r := range all {
		if ratingFilter != nil && r.Rating != *ratingFilter {
			continue
		}
		out.Reviews = append(out.Reviews, AdminReviewView{
			ReviewWithPhone: r,
			Stars:           format.Stars(r.Rating),
			Date:            format.RelativeDate(r.CreatedAt, now),
		})
	}
	return out, nil
}

func (s *Service) DeleteReview(ctx context.Context, id int64) error {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if review == nil {
		return &domain.NotFoundError{Entity: "Review", Key: strconv.FormatInt(id, 10)}
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("review deleted", zap.Int64("id", id))
	return nil
}
