package catalog

import (
	"context"

	"github.com/quochao170402/cekspek/internal/importer"
)

// Import parses the batch and inserts its rows. A *importer.ParseError means
// nothing was written.
func (s *Service) Import(ctx context.Context, data []byte) (*importer.Result, error) {
	rows, err := importer.Parse(data)
	if err != nil {
		return nil, err
	}
	res, err := importer.New(s.brands, s.phones, s.logger.Named("import")).Run(ctx, rows)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
