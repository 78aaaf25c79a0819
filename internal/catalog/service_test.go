package catalog

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/quochao170402/cekspek/internal/domain"
	"github.com/quochao170402/cekspek/internal/importer"
	"github.com/quochao170402/cekspek/internal/repository/repositorytest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2024, 1, 2, 6, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*Service, *repositorytest.Memory) {
	t.Helper()
	mem := repositorytest.NewMemory()
	return NewService(mem.Store(), nil, WithClock(func() time.Time { return fixedNow })), mem
}

func mustBrand(t *testing.T, s *Service, name string) *domain.Brand {
	t.Helper()
	b, err := s.CreateBrand(context.Background(), domain.BrandInput{Name: name})
	require.NoError(t, err)
	return b
}

func mustPhone(t *testing.T, s *Service, brandID int64, name string, edit func(*domain.PhoneInput)) *domain.Phone {
	t.Helper()
	in := domain.PhoneInput{BrandID: brandID, Name: name}
	if edit != nil {
		edit(&in)
	}
	p, err := s.CreatePhone(context.Background(), in)
	require.NoError(t, err)
	return p
}

func review(rating int) domain.ReviewInput {
	return domain.ReviewInput{Rating: rating, Comment: "cukup bagus untuk harganya"}
}

func TestDeleteBrandWithPhonesIsRejected(t *testing.T) {
	s, mem := newService(t)
	ctx := context.Background()
	b := mustBrand(t, s, "Samsung")
	mustPhone(t, s, b.ID, "Galaxy S24", nil)
	mustPhone(t, s, b.ID, "Galaxy A55", nil)

	err := s.DeleteBrand(ctx, b.ID)
	var rie *domain.ReferentialIntegrityError
	require.ErrorAs(t, err, &rie)
	assert.Equal(t, `Tidak bisa menghapus "Samsung" karena masih ada 2 smartphone terkait.`, err.Error())
	assert.Zero(t, mem.Calls("brands.Delete"))

	_, err = s.GetBrand(ctx, b.ID)
	assert.NoError(t, err)
}

func TestDeleteEmptyBrand(t *testing.T) {
	s, mem := newService(t)
	b := mustBrand(t, s, "Nokia")

	require.NoError(t, s.DeleteBrand(context.Background(), b.ID))
	assert.Equal(t, 1, mem.Calls("brands.Delete"))

	err := s.DeleteBrand(context.Background(), b.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestCreateBrandValidationSkipsStore(t *testing.T) {
	s, mem := newService(t)
	_, err := s.CreateBrand(context.Background(), domain.BrandInput{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, mem.Calls("brands.Create"))
}

func TestListBrandsCountsPhones(t *testing.T) {
	s, _ := newService(t)
	xiaomi := mustBrand(t, s, "Xiaomi")
	mustBrand(t, s, "Apple")
	mustPhone(t, s, xiaomi.ID, "Redmi 13", nil)

	brands, err := s.ListBrands(context.Background())
	require.NoError(t, err)
	require.Len(t, brands, 2)
	assert.Equal(t, "Apple", brands[0].Name)
	assert.Equal(t, int64(0), brands[0].PhoneCount)
	assert.Equal(t, int64(1), brands[1].PhoneCount)
}

func TestCreatePhoneUnknownBrand(t *testing.T) {
	s, mem := newService(t)
	_, err := s.CreatePhone(context.Background(), domain.PhoneInput{BrandID: 42, Name: "Ghost"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "brand_id", verr.Field)
	assert.Zero(t, mem.Calls("phones.Create"))
}

func TestCreatePhoneNormalizes(t *testing.T) {
	s, _ := newService(t)
	b := mustBrand(t, s, "Vivo")
	p := mustPhone(t, s, b.ID, "Vivo V30 Pro", func(in *domain.PhoneInput) {
		in.PriceMin = domain.Ptr(int64(0))
		in.Chipset = domain.Ptr("")
	})
	assert.Equal(t, "vivo-v30-pro", p.Slug)
	assert.Nil(t, p.PriceMin)
	assert.Nil(t, p.Chipset)
	assert.Equal(t, "Vivo", p.BrandName())
}

func TestBlankLinksAreStoredAsNull(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	b := mustBrand(t, s, "Samsung")

	var in domain.PhoneInput
	require.NoError(t, json.Unmarshal([]byte(`{"brand_id":`+strconv.FormatInt(b.ID, 10)+
		`,"name":"Galaxy A55","image_url":"","shopee_link":"","tokopedia_link":" "}`), &in))
	p, err := s.CreatePhone(ctx, in)
	require.NoError(t, err)
	assert.Nil(t, p.ImageURL)
	assert.Nil(t, p.ShopeeLink)
	assert.Nil(t, p.TokopediaLink)

	in.ImageURL = domain.Ptr("https://img.cekspek.id/a55.png")
	p, err = s.UpdatePhone(ctx, p.ID, in)
	require.NoError(t, err)
	require.NotNil(t, p.ImageURL)
	assert.Equal(t, "https://img.cekspek.id/a55.png", *p.ImageURL)
	assert.Nil(t, p.ShopeeLink)

	in.ShopeeLink = domain.Ptr("bukan url")
	_, err = s.UpdatePhone(ctx, p.ID, in)
	assert.EqualError(t, err, "Link Shopee tidak valid")
}

func TestUnusableSlugOverrideFallsBackToName(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	b, err := s.CreateBrand(ctx, domain.BrandInput{Name: "Xiaomi", Slug: "!!!"})
	require.NoError(t, err)
	assert.Equal(t, "xiaomi", b.Slug)

	p := mustPhone(t, s, b.ID, "Galaxy S24", func(in *domain.PhoneInput) { in.Slug = "***" })
	assert.Equal(t, "galaxy-s24", p.Slug)
}

func TestDeletePhoneRemovesReviews(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	b := mustBrand(t, s, "Oppo")
	keep := mustPhone(t, s, b.ID, "Reno 11", nil)
	gone := mustPhone(t, s, b.ID, "Find X7", nil)
	_, err := s.SubmitReview(ctx, gone.ID, review(5))
	require.NoError(t, err)
	_, err = s.SubmitReview(ctx, keep.ID, review(3))
	require.NoError(t, err)

	require.NoError(t, s.DeletePhone(ctx, gone.ID))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, DashboardStats{Phones: 1, Brands: 1, Reviews: 1}, *stats)

	_, err = s.PhoneDetail(ctx, gone.Slug)
	assert.True(t, domain.IsNotFound(err))
}

func TestSubmitReviewValidation(t *testing.T) {
	s, mem := newService(t)
	ctx := context.Background()
	b := mustBrand(t, s, "Realme")
	p := mustPhone(t, s, b.ID, "Realme 12", nil)

	_, err := s.SubmitReview(ctx, p.ID, domain.ReviewInput{Rating: 4, Comment: "  pendek  "})
	assert.EqualError(t, err, "Komentar minimal 10 karakter")
	_, err = s.SubmitReview(ctx, p.ID, domain.ReviewInput{Comment: strings.Repeat("x", 20)})
	assert.EqualError(t, err, "Pilih rating terlebih dahulu")
	assert.Zero(t, mem.Calls("reviews.Create"))

	r, err := s.SubmitReview(ctx, p.ID, domain.ReviewInput{ReviewerName: " ", Rating: 4, Comment: "baterai awet seharian"})
	require.NoError(t, err)
	assert.Equal(t, "Anonim", r.ReviewerName)

	_, err = s.SubmitReview(ctx, 999, review(4))
	assert.True(t, domain.IsNotFound(err))
}

func TestDeleteReview(t *testing.T) {
	s, mem := newService(t)
	ctx := context.Background()
	b := mustBrand(t, s, "Infinix")
	p := mustPhone(t, s, b.ID, "Note 40", nil)
	r, err := s.SubmitReview(ctx, p.ID, review(2))
	require.NoError(t, err)

	require.NoError(t, s.DeleteReview(ctx, r.ID))
	assert.Equal(t, 1, mem.Calls("reviews.Delete"))

	err = s.DeleteReview(ctx, r.ID)
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, 1, mem.Calls("reviews.Delete"))
}

func TestPhoneDetail(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	b := mustBrand(t, s, "Google")
	p := mustPhone(t, s, b.ID, "Pixel 8", func(in *domain.PhoneInput) {
		in.PriceMin = domain.Ptr(int64(9_000_000))
		in.Chipset = domain.Ptr("Tensor G3")
	})
	for _, r := range []int{5, 4, 4} {
		_, err := s.SubmitReview(ctx, p.ID, review(r))
		require.NoError(t, err)
	}

	d, err := s.PhoneDetail(ctx, "pixel-8")
	require.NoError(t, err)
	assert.Equal(t, 3, d.Rating.Total)
	assert.InDelta(t, 13.0/3, d.Rating.Average, 1e-9)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 2, 5: 1}, d.Rating.Distribution)
	require.Len(t, d.Reviews, 3)
	assert.Equal(t, "⭐⭐⭐⭐☆", d.Reviews[0].Stars)
	assert.Equal(t, "Rp 9.000.000", d.Sheet.Price)
}

func TestAdminListPhones(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	samsung := mustBrand(t, s, "Samsung")
	apple := mustBrand(t, s, "Apple")
	mustPhone(t, s, samsung.ID, "Galaxy S24", nil)
	mustPhone(t, s, apple.ID, "iPhone 15", nil)
	mustPhone(t, s, samsung.ID, "Galaxy Z Flip5", nil)

	all, err := s.AdminListPhones(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)
	assert.Equal(t, "Galaxy Z Flip5", all.Phones[0].Name)

	bySamsung, err := s.AdminListPhones(ctx, "SAMSUNG")
	require.NoError(t, err)
	assert.Len(t, bySamsung.Phones, 2)
	assert.Equal(t, 3, bySamsung.Total)

	byName, err := s.AdminListPhones(ctx, "iphone")
	require.NoError(t, err)
	assert.Len(t, byName.Phones, 1)
}

func TestAdminListReviews(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	b := mustBrand(t, s, "Asus")
	p := mustPhone(t, s, b.ID, "ROG Phone 8", nil)
	for _, r := range []int{5, 1, 5} {
		_, err := s.SubmitReview(ctx, p.ID, review(r))
		require.NoError(t, err)
	}

	five := 5
	res, err := s.AdminListReviews(ctx, &five)
	require.NoError(t, err)
	assert.Len(t, res.Reviews, 2)
	assert.Equal(t, 3, res.Stats.Total)
	assert.Equal(t, 1, res.Stats.Distribution[1])
	assert.Equal(t, "ROG Phone 8", res.Reviews[0].PhoneName)
	assert.Equal(t, "Kemarin", res.Reviews[0].Date)

	bad := 9
	_, err = s.AdminListReviews(ctx, &bad)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSearchShortQueryNeverHitsStore(t *testing.T) {
	s, mem := newService(t)
	for _, q := range []string{"", "a", "  b  "} {
		res, err := s.Search(context.Background(), q)
		require.NoError(t, err)
		assert.Empty(t, res)
	}
	assert.Zero(t, mem.Calls("phones.Search"))
}

func TestSearch(t *testing.T) {
	s, _ := newService(t)
	b := mustBrand(t, s, "Xiaomi")
	mustPhone(t, s, b.ID, "Xiaomi 14", func(in *domain.PhoneInput) { in.Chipset = domain.Ptr("Snapdragon 8 Gen 3") })
	mustPhone(t, s, b.ID, "POCO F6", func(in *domain.PhoneInput) { in.Chipset = domain.Ptr("Snapdragon 8s Gen 3") })
	mustPhone(t, s, b.ID, "Redmi 13", func(in *domain.PhoneInput) { in.Chipset = domain.Ptr("Helio G91") })

	res, err := s.Search(context.Background(), " snapdragon ")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "POCO F6", res[0].Name)
	assert.Equal(t, "Xiaomi", res[0].BrandName)
}

func TestCompare(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	b := mustBrand(t, s, "Samsung")
	a := mustPhone(t, s, b.ID, "Galaxy S24", func(in *domain.PhoneInput) { in.PriceMin = domain.Ptr(int64(12_000_000)) })
	c := mustPhone(t, s, b.ID, "Galaxy A55", nil)
	_, err := s.SubmitReview(ctx, a.ID, review(4))
	require.NoError(t, err)
	_, err = s.SubmitReview(ctx, a.ID, review(5))
	require.NoError(t, err)

	tbl, err := s.Compare(ctx, []int64{c.ID, a.ID})
	require.NoError(t, err)
	assert.Equal(t, "Galaxy A55", tbl.Columns[0].Name)
	assert.Equal(t, []string{"-", "Rp 12.000.000"}, tbl.Sections[0].Rows[0].Values)
	assert.Equal(t, []string{"-", "⭐ 4.5"}, tbl.Sections[0].Rows[1].Values)

	bySlug, err := s.CompareBySlugs(ctx, []string{"galaxy-s24", "galaxy-a55"})
	require.NoError(t, err)
	assert.Equal(t, "Galaxy S24", bySlug.Columns[0].Name)
}

func TestCompareRejects(t *testing.T) {
	s, mem := newService(t)
	ctx := context.Background()
	b := mustBrand(t, s, "Samsung")
	a := mustPhone(t, s, b.ID, "Galaxy S24", nil)
	lookups := mem.Calls("phones.GetByID")

	var verr *domain.ValidationError
	_, err := s.Compare(ctx, []int64{a.ID})
	require.ErrorAs(t, err, &verr)
	_, err = s.Compare(ctx, []int64{a.ID, a.ID})
	require.ErrorAs(t, err, &verr)
	_, err = s.Compare(ctx, []int64{1, 2, 3, 4})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, lookups, mem.Calls("phones.GetByID"))

	_, err = s.Compare(ctx, []int64{a.ID, 999})
	assert.True(t, domain.IsNotFound(err))
}

func TestImport(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	mustBrand(t, s, "Samsung")

	_, err := s.Import(ctx, []byte(`{"name":"x"}`))
	var perr *importer.ParseError
	require.ErrorAs(t, err, &perr)

	res, err := s.Import(ctx, []byte(`[
		{"brand":"samsung","name":"Galaxy A35","price_min":4999000},
		{"brand":"samsung","name":"Galaxy A35"},
		{"brand":"Infinix","name":"Note 40"}
	]`))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Success)
	assert.Equal(t, 2, res.Failed)
	assert.Contains(t, res.Errors[0], `"Galaxy A35": duplicate key value`)
	assert.Equal(t, `"Note 40": Brand "Infinix" tidak ditemukan`, res.Errors[1])

	p, err := s.GetPhoneBySlug(ctx, "galaxy-a35")
	require.NoError(t, err)
	assert.False(t, *p.NFC)
}
