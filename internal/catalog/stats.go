package catalog

import "context"

type DashboardStats struct {
	Phones  int64 `json:"phones"`
	Brands  int64 `json:"brands"`
	Reviews int64 `json:"reviews"`
}

func (s *Service) Stats(ctx context.Context) (*DashboardStats, error) {
	var st DashboardStats
	var err error
	if st.Phones, err = s.phones.Count(ctx); err != nil {
		return nil, err
	}
	if st.Brands, err = s.brands.Count(ctx); err != nil {
		return nil, err
	}
	if st.Reviews, err = s.reviews.Count(ctx); err != nil {
		return nil, err
	}
	return &st, nil
}
