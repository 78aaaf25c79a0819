package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quochao170402/cekspek/internal/domain"
)

type fakeBrands struct {
	brands []domain.Brand
	err    error
}

func (f *fakeBrands) List(context.Context) ([]domain.Brand, error) { return f.brands, f.err }

type fakePhones struct {
	created []domain.Phone
	failOn  map[string]error
}

func (f *fakePhones) Create(_ context.Context, p *domain.Phone) error {
	if err, ok := f.failOn[p.Name]; ok {
		return err
	}
	p.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *p)
	return nil
}

func TestParseRejectsBatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"object", `{"name":"x"}`, "Data harus berupa array []"},
		{"empty", `[]`, "Array tidak boleh kosong"},
		{"missing name", `[{"name":"A","brand":"B"},{"brand":"B"}]`, `Item 2: "name" wajib diisi`},
		{"missing brand", `[{"name":"A"}]`, `Item 1: "brand" wajib diisi`},
		{"empty brand", `[{"name":"A","brand":""}]`, `Item 1: "brand" wajib diisi`},
		{"not an object", `[1]`, `Item 1: "name" wajib diisi`},
		{"zero name", `[{"name":0,"brand":"B"}]`, `Item 1: "name" wajib diisi`},
		{"boolean brand", `[{"name":"A","brand":true}]`, `Item 1: "brand" wajib diisi`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Parse([]byte(tt.input))
			assert.Nil(t, rows)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.want, perr.Message)
		})
	}
}

func TestParseNumericName(t *testing.T) {
	rows, err := Parse([]byte(`[{"name":3310,"brand":"Nokia"}]`))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "3310", rows[0].Name)

	p, err := ToPhone(rows[0], 1)
	require.NoError(t, err)
	assert.Equal(t, "3310", p.Slug)
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`[{"name":`))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "JSON tidak valid")
}

func TestToPhoneCoercion(t *testing.T) {
	rows, err := Parse([]byte(`[{
		"brand": "Samsung",
		"name": "Galaxy A55 5G",
		"price_min": 5999000,
		"price_max": 0,
		"release_date": "2024-03-11",
		"display_size": 6.6,
		"display_type": "",
		"display_refresh_rate": 120,
		"chipset": "Exynos 1480",
		"antutu_score": "621000",
		"nfc": true,
		"is_featured": null
	}]`))
	require.NoError(t, err)

	p, err := ToPhone(rows[0], 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), p.BrandID)
	assert.Equal(t, "galaxy-a55-5g", p.Slug)
	assert.Equal(t, int64(5_999_000), *p.PriceMin)
	assert.Nil(t, p.PriceMax)
	assert.Equal(t, "2024-03-11", p.ReleaseDate.String())
	assert.Equal(t, 6.6, *p.DisplaySize)
	assert.Nil(t, p.DisplayType)
	assert.Equal(t, 120, *p.DisplayRefreshRate)
	assert.Equal(t, 621000, *p.AntutuScore)
	assert.True(t, *p.NFC)
	assert.False(t, *p.AudioJack)
	assert.False(t, *p.FaceUnlock)
	assert.False(t, p.IsFeatured)
	assert.Nil(t, p.CameraMain)
}

func TestToPhoneBadValue(t *testing.T) {
	rows, err := Parse([]byte(`[{"brand":"B","name":"N","battery_capacity":"besar"}]`))
	require.NoError(t, err)
	_, err = ToPhone(rows[0], 1)
	assert.ErrorContains(t, err, "battery_capacity")
}

func TestRunCollectsRowErrors(t *testing.T) {
	rows, err := Parse([]byte(`[
		{"brand":"samsung","name":"Galaxy S24"},
		{"brand":"Nokia","name":"3310"},
		{"brand":"Samsung","name":"Galaxy Dup"},
		{"brand":"SAMSUNG","name":"Galaxy A15","price_min":3000000,"price_max":2000000},
		{"brand":"Samsung","name":"Galaxy Z Fold6"}
	]`))
	require.NoError(t, err)

	brands := &fakeBrands{brands: []domain.Brand{{ID: 7, Name: "Samsung"}}}
	phones := &fakePhones{failOn: map[string]error{
		"Galaxy Dup": errors.New(`duplicate key value violates unique constraint "phones_slug_key"`),
	}}

	res, err := New(brands, phones, nil).Run(context.Background(), rows)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Success)
	assert.Equal(t, 3, res.Failed)
	assert.Equal(t, []string{
		`"3310": Brand "Nokia" tidak ditemukan`,
		`"Galaxy Dup": duplicate key value violates unique constraint "phones_slug_key"`,
		`"Galaxy A15": Harga maksimum harus lebih besar atau sama dengan harga minimum`,
	}, res.Errors)
	require.Len(t, phones.created, 2)
	assert.Equal(t, int64(7), phones.created[0].BrandID)
	assert.Equal(t, "galaxy-z-fold6", phones.created[1].Slug)
}

func TestRunBrandLoadFailure(t *testing.T) {
	rows, err := Parse([]byte(`[{"brand":"B","name":"N"}]`))
	require.NoError(t, err)

	_, err = New(&fakeBrands{err: assert.AnError}, &fakePhones{}, nil).Run(context.Background(), rows)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestRunStopsOnCancel(t *testing.T) {
	rows, err := Parse([]byte(`[{"brand":"B","name":"N"}]`))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	phones := &fakePhones{}
	_, err = New(&fakeBrands{brands: []domain.Brand{{ID: 1, Name: "B"}}}, phones, nil).Run(ctx, rows)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, phones.created)
}

func TestPreview(t *testing.T) {
	rows, err := Parse([]byte(`[{"brand":"Apple","name":"iPhone 15","price_min":13999000}]`))
	require.NoError(t, err)
	assert.Equal(t, "Apple iPhone 15 (Rp 13.999.000)", rows[0].Preview())
}
