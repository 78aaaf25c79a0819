package domain

import "time"

type Brand struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" dynamodbav:"id" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" dynamodbav:"name" json:"name"`
	Slug      string    `gorm:"size:120;uniqueIndex;not null" dynamodbav:"slug" json:"slug"`
	LogoURL   *string   `gorm:"column:logo_url" dynamodbav:"logo_url,omitempty" json:"logo_url"`
	Country   *string   `gorm:"size:60" dynamodbav:"country,omitempty" json:"country"`
	CreatedAt time.Time `gorm:"autoCreateTime" dynamodbav:"created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" dynamodbav:"updated_at" json:"updated_at"`
}

// BrandWithCount is a brand row as listed in the admin panel.
type BrandWithCount struct {
	Brand
	PhoneCount int64 `gorm:"column:phone_count" json:"phone_count"`
}

func (b Brand) GetID() int64      { return b.ID }
func (b *Brand) SetID(id int64)   { b.ID = id }
func (b Brand) TableName() string { return "brands" }

func (b *Brand) SetCreatedAt(t time.Time) { b.CreatedAt = t }
func (b *Brand) SetUpdatedAt(t time.Time) { b.UpdatedAt = t }
func (b Brand) GetCreatedAt() time.Time   { return b.CreatedAt }

// BrandInput is the payload of the admin brand form.
type BrandInput struct {
	Name    string `json:"name" yaml:"name" validate:"required,max=100"`
	Slug    string `json:"slug" yaml:"slug" validate:"omitempty,max=120"`
	LogoURL string `json:"logo_url" yaml:"logo_url" validate:"omitempty,url"`
	Country string `json:"country" yaml:"country" validate:"omitempty,max=60"`
}

var brandMessages = map[string]string{
	"name.required": "Nama brand wajib diisi",
	"name.max":      "Nama brand maksimal 100 karakter",
	"slug.max":      "Slug maksimal 120 karakter",
	"slug.required": "Slug tidak boleh kosong",
	"logo_url.url":  "Logo URL tidak valid",
	"country.max":   "Negara maksimal 60 karakter",
}

// Validate checks the input before it reaches the store.
func (in BrandInput) Validate() error {
	if err := validateStruct(in, brandMessages); err != nil {
		return err
	}
	if Slugify(in.Name) == "" && Slugify(in.Slug) == "" {
		return &ValidationError{Field: "slug", Message: brandMessages["slug.required"]}
	}
	return nil
}

// Apply copies the input onto b. The slug follows the name unless an override is given.
func (in BrandInput) Apply(b *Brand) {
	b.Name = in.Name
	b.Slug = SlugOrName(in.Slug, in.Name)
	b.LogoURL = TextPtr(in.LogoURL)
	b.Country = TextPtr(in.Country)
}
