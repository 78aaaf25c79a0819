package importer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/quochao170402/cekspek/internal/domain"
)

type BrandLister interface {
	List(ctx context.Context) ([]domain.Brand, error)
}

type PhoneCreator interface {
	Create(ctx context.Context, phone *domain.Phone) error
}

// RowError is the failure of a single row. The rest of the batch carries on.
type RowError struct {
	Index int
	Name  string
	Err   error
}

func (e *RowError) Error() string {
	return `"` + e.Name + `": ` + e.Err.Error()
}

func (e *RowError) Unwrap() error {
	return e.Err
}

type Result struct {
	Success   int        `json:"success"`
	Failed    int        `json:"failed"`
	Errors    []string   `json:"errors"`
	RowErrors []RowError `json:"-"`
}

func (r *Result) fail(row Row, err error) {
	re := RowError{Index: row.Index, Name: row.Name, Err: err}
	r.Failed++
	r.RowErrors = append(r.RowErrors, re)
	r.Errors = append(r.Errors, re.Error())
}

type Importer struct {
	brands BrandLister
	phones PhoneCreator
	logger *zap.Logger
}

func New(brands BrandLister, phones PhoneCreator, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{brands: brands, phones: phones, logger: logger}
}

// Run inserts rows in order, one insert per row. Brands are matched by name
// ignoring case. The returned error is set only when the batch could not be
// started or the context ended; row failures are reported in the Result.
func (im *Importer) Run(ctx context.Context, rows []Row) (Result, error) {
	res := Result{Errors: []string{}}

	brands, err := im.brands.List(ctx)
	if err != nil {
		return res, fmt.Errorf("load brands: %w", err)
	}
	byName := make(map[string]int64, len(brands))
	for _, b := range brands {
		byName[strings.ToLower(b.Name)] = b.ID
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		brandID, ok := byName[strings.ToLower(row.Brand)]
		if !ok {
			res.fail(row, fmt.Errorf("Brand %q tidak ditemukan", row.Brand))
			continue
		}

		phone, err := ToPhone(row, brandID)
		if err == nil {
			err = domain.CheckPriceRange(phone.PriceMin, phone.PriceMax)
		}
		if err == nil {
			err = im.phones.Create(ctx, &phone)
		}
		if err != nil {
			im.logger.Warn("import row failed",
				zap.Int("item", row.Index),
				zap.String("name", row.Name),
				zap.Error(err))
			res.fail(row, err)
			continue
		}
		res.Success++
	}

	im.logger.Info("import finished",
		zap.Int("success", res.Success),
		zap.Int("failed", res.Failed))
	return res, nil
}
