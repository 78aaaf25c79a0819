package domain

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var slugShape = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$|^$`)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Samsung Galaxy S24 Ultra": "samsung-galaxy-s24-ultra",
		"  Xiaomi  14T Pro  ":      "xiaomi-14t-pro",
		"iPhone 15 (128GB)":        "iphone-15-128gb",
		"--POCO--F6--":             "poco-f6",
		"Café Ñ":                   "caf",
		"!!!":                      "",
	}
	for in, want := range cases {
		got := Slugify(in)
		assert.Equal(t, want, got, in)
		assert.Equal(t, got, Slugify(got), "slugify is not idempotent for %q", in)
		assert.Regexp(t, slugShape, got, in)
	}
}

func TestSlugOrName(t *testing.T) {
	assert.Equal(t, "redmi-note-13", SlugOrName("Redmi Note 13", "Xiaomi"))
	assert.Equal(t, "xiaomi", SlugOrName("!!!", "Xiaomi"))
	assert.Equal(t, "xiaomi", SlugOrName("", "Xiaomi"))
}

func TestBrandInputApply(t *testing.T) {
	in := BrandInput{Name: "Realme", Country: "China"}
	require.NoError(t, in.Validate())

	var b Brand
	in.Apply(&b)
	assert.Equal(t, "realme", b.Slug)
	assert.Nil(t, b.LogoURL)
	require.NotNil(t, b.Country)
	assert.Equal(t, "China", *b.Country)

	in.Slug = "Realme ID"
	in.Apply(&b)
	assert.Equal(t, "realme-id", b.Slug)

	in.Slug = "!!!"
	require.NoError(t, in.Validate())
	in.Apply(&b)
	assert.Equal(t, "realme", b.Slug)
}

func TestBrandInputValidate(t *testing.T) {
	err := BrandInput{}.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
	assert.Equal(t, "Nama brand wajib diisi", verr.Message)

	err = BrandInput{Name: "Oppo", LogoURL: "not a url"}.Validate()
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "logo_url", verr.Field)

	err = BrandInput{Name: "***"}.Validate()
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "slug", verr.Field)
}

func TestPhoneInputApplyNormalizes(t *testing.T) {
	in := PhoneInput{
		BrandID:  1,
		Name:     "Galaxy A55",
		ImageURL: Ptr(""),
		PriceMin: Ptr(int64(0)),
		PriceMax: Ptr(int64(6_000_000)),
	}
	in.ShopeeLink = Ptr("")
	in.TokopediaLink = Ptr("  ")
	in.Chipset = Ptr("undefined")
	in.RAM = Ptr("8 GB")
	in.BatteryCapacity = Ptr(0)
	in.DisplaySize = Ptr(6.6)
	require.NoError(t, in.Validate())

	var p Phone
	in.Apply(&p)
	assert.Equal(t, "galaxy-a55", p.Slug)
	assert.Nil(t, p.ImageURL)
	assert.Nil(t, p.ShopeeLink)
	assert.Nil(t, p.TokopediaLink)
	assert.Nil(t, p.PriceMin)
	assert.Equal(t, int64(6_000_000), *p.PriceMax)
	assert.Nil(t, p.Chipset)
	assert.Equal(t, "8 GB", *p.RAM)
	assert.Nil(t, p.BatteryCapacity)
	assert.Equal(t, 6.6, *p.DisplaySize)
	require.NotNil(t, p.NFC)
	assert.False(t, *p.NFC)
	require.NotNil(t, p.AudioJack)
	require.NotNil(t, p.FaceUnlock)
	assert.False(t, p.IsFeatured)
}

func TestPhoneInputValidate(t *testing.T) {
	var verr *ValidationError

	err := PhoneInput{Name: "X"}.Validate()
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "brand_id", verr.Field)

	err = PhoneInput{BrandID: 1, Name: "X", PriceMin: Ptr(int64(5)), PriceMax: Ptr(int64(4))}.Validate()
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "price_max", verr.Field)

	in := PhoneInput{BrandID: 1, Name: "X"}
	in.ShopeeLink = Ptr("shopee")
	err = in.Validate()
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Link Shopee tidak valid", verr.Message)

	in = PhoneInput{BrandID: 1, Name: "X"}
	in.AntutuScore = Ptr(-1)
	err = in.Validate()
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "antutu_score", verr.Field)
}

func TestPhoneJSONIsFlat(t *testing.T) {
	p := Phone{ID: 3, Name: "Pixel 9"}
	p.Chipset = Ptr("Tensor G4")
	p.ReleaseDate = Ptr(NewDate(2024, 8, 22))

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "Tensor G4", raw["chipset"])
	assert.Equal(t, "2024-08-22", raw["release_date"])
	assert.NotContains(t, raw, "PerformanceSpec")
	assert.NotContains(t, raw, "reviews")
}

func TestReviewInput(t *testing.T) {
	tests := []struct {
		name    string
		in      ReviewInput
		wantErr string
	}{
		{"no rating", ReviewInput{Comment: strings.Repeat("a", 20)}, "Pilih rating terlebih dahulu"},
		{"rating too high", ReviewInput{Rating: 6, Comment: strings.Repeat("a", 20)}, "Rating harus antara 1 dan 5"},
		{"comment 9 chars", ReviewInput{Rating: 1, Comment: strings.Repeat("a", 9)}, "Komentar minimal 10 karakter"},
		{"comment padded to 10", ReviewInput{Rating: 1, Comment: "   " + strings.Repeat("a", 9) + "  "}, "Komentar minimal 10 karakter"},
		{"comment 10 chars", ReviewInput{Rating: 1, Comment: strings.Repeat("a", 10)}, ""},
		{"comment 500 chars", ReviewInput{Rating: 5, Comment: strings.Repeat("a", 500)}, ""},
		{"comment 501 chars", ReviewInput{Rating: 5, Comment: strings.Repeat("a", 501)}, "Komentar maksimal 500 karakter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()
			err := tt.in.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestReviewInputDefaultsReviewer(t *testing.T) {
	in := ReviewInput{ReviewerName: "   ", Rating: 4, Comment: " bagus sekali hpnya "}
	in.Normalize()
	r := in.ToReview(9)
	assert.Equal(t, AnonymousReviewer, r.ReviewerName)
	assert.Equal(t, "bagus sekali hpnya", r.Comment)
	assert.Equal(t, int64(9), r.PhoneID)
}

func TestDate(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2023-10-05"`), &d))
	assert.Equal(t, "2023-10-05", d.String())

	require.NoError(t, d.Scan("2024-01-31T00:00:00Z"))
	assert.Equal(t, "2024-01-31", d.String())

	assert.Error(t, json.Unmarshal([]byte(`"05/10/2023"`), &d))
}

func TestErrorMessages(t *testing.T) {
	err := &ReferentialIntegrityError{Brand: "Samsung", PhoneCount: 3}
	assert.Equal(t, `Tidak bisa menghapus "Samsung" karena masih ada 3 smartphone terkait.`, err.Error())

	wrapped := NewStoreError("create phone", assert.AnError)
	assert.Equal(t, assert.AnError.Error(), wrapped.Error())
	assert.ErrorIs(t, wrapped, assert.AnError)
	assert.Same(t, wrapped, NewStoreError("again", wrapped))
}
