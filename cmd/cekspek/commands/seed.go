package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/quochao170402/cekspek/cmd/cekspek/output"
	"github.com/quochao170402/cekspek/internal/catalog"
	"github.com/quochao170402/cekspek/internal/domain"
)

// SeedFile is the YAML layout read by the seed command. Phones use the
// same flat fields as an import batch.
type SeedFile struct {
	Brands []domain.BrandInput `yaml:"brands"`
	Phones []map[string]any    `yaml:"phones"`
}

var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Create brands and phones from a YAML file",
	Long: `Create brands and phones from a YAML file.

Brands that already exist (by name) are skipped, so the command can be
re-run. Phones go through the same validation as an import.

Example file:
  brands:
    - name: Samsung
      country: Korea Selatan
  phones:
    - brand: Samsung
      name: Galaxy A55 5G
      price_min: 5999000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		seed, err := ParseSeed(data)
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			return ApplySeed(ctx, a.catalog, seed, cmd.OutOrStdout())
		})
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func ParseSeed(data []byte) (*SeedFile, error) {
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	if len(seed.Brands) == 0 && len(seed.Phones) == 0 {
		return nil, fmt.Errorf("seed file has no brands or phones")
	}
	return &seed, nil
}

func ApplySeed(ctx context.Context, svc *catalog.Service, seed *SeedFile, w io.Writer) error {
	existing, err := svc.ListBrands(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(existing))
	for _, b := range existing {
		known[strings.ToLower(b.Name)] = true
	}

	created := 0
	for _, in := range seed.Brands {
		if known[strings.ToLower(strings.TrimSpace(in.Name))] {
			output.Muted(w, "brand %s sudah ada", in.Name)
			continue
		}
		if _, err := svc.CreateBrand(ctx, in); err != nil {
			return fmt.Errorf("brand %q: %w", in.Name, err)
		}
		known[strings.ToLower(strings.TrimSpace(in.Name))] = true
		created++
	}
	output.Success(w, "%d brand dibuat", created)

	if len(seed.Phones) == 0 {
		return nil
	}
	batch, err := json.Marshal(seed.Phones)
	if err != nil {
		return fmt.Errorf("encode phones: %w", err)
	}
	res, err := svc.Import(ctx, batch)
	if err != nil {
		return err
	}
	output.ImportSummary(w, *res)
	return nil
}
