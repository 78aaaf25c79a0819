package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quochao170402/cekspek/internal/catalog"
	"github.com/quochao170402/cekspek/internal/repository/repositorytest"
)

const seedYAML = `
brands:
  - name: Samsung
    country: Korea Selatan
  - name: Xiaomi
phones:
  - brand: samsung
    name: Galaxy A55 5G
    price_min: 5999000
    release_date: 2024-03-11
    nfc: true
  - brand: Huawei
    name: Nova 12
`

func TestParseSeed(t *testing.T) {
	seed, err := ParseSeed([]byte(seedYAML))
	require.NoError(t, err)
	require.Len(t, seed.Brands, 2)
	assert.Equal(t, "Korea Selatan", seed.Brands[0].Country)
	assert.Len(t, seed.Phones, 2)

	_, err = ParseSeed([]byte("brands: []\n"))
	assert.Error(t, err)
	_, err = ParseSeed([]byte("brands: [\n"))
	assert.ErrorContains(t, err, "invalid seed file")
}

func TestApplySeedIsRepeatable(t *testing.T) {
	mem := repositorytest.NewMemory()
	svc := catalog.NewService(mem.Store(), nil)
	seed, err := ParseSeed([]byte(seedYAML))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, ApplySeed(context.Background(), svc, seed, &out))
	assert.Contains(t, out.String(), "2 brand dibuat")
	assert.Contains(t, out.String(), `"Nova 12": Brand "Huawei" tidak ditemukan`)

	phone, err := svc.GetPhoneBySlug(context.Background(), "galaxy-a55-5g")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", phone.ReleaseDate.String())
	assert.True(t, *phone.NFC)

	out.Reset()
	require.NoError(t, ApplySeed(context.Background(), svc, &SeedFile{Brands: seed.Brands}, &out))
	assert.Contains(t, out.String(), "0 brand dibuat")
	assert.Equal(t, 2, mem.Calls("brands.Create"))
}
