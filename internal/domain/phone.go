package domain

import "time"

type DisplaySpec struct {
	DisplaySize        *float64 `gorm:"column:display_size" dynamodbav:"display_size,omitempty" json:"display_size" validate:"omitempty,gte=0"`
	DisplayType        *string  `gorm:"column:display_type" dynamodbav:"display_type,omitempty" json:"display_type"`
	DisplayResolution  *string  `gorm:"column:display_resolution" dynamodbav:"display_resolution,omitempty" json:"display_resolution"`
	DisplayRefreshRate *int     `gorm:"column:display_refresh_rate" dynamodbav:"display_refresh_rate,omitempty" json:"display_refresh_rate" validate:"omitempty,gte=0"`
	DisplayProtection  *string  `gorm:"column:display_protection" dynamodbav:"display_protection,omitempty" json:"display_protection"`
}

type PerformanceSpec struct {
	Chipset     *string `gorm:"column:chipset;index" dynamodbav:"chipset,omitempty" json:"chipset"`
	CPU         *string `gorm:"column:cpu" dynamodbav:"cpu,omitempty" json:"cpu"`
	GPU         *string `gorm:"column:gpu" dynamodbav:"gpu,omitempty" json:"gpu"`
	RAM         *string `gorm:"column:ram" dynamodbav:"ram,omitempty" json:"ram"`
	Storage     *string `gorm:"column:storage" dynamodbav:"storage,omitempty" json:"storage"`
	AntutuScore *int    `gorm:"column:antutu_score" dynamodbav:"antutu_score,omitempty" json:"antutu_score" validate:"omitempty,gte=0"`
}

type CameraSpec struct {
	CameraMain      *string `gorm:"column:camera_main" dynamodbav:"camera_main,omitempty" json:"camera_main"`
	CameraUltrawide *string `gorm:"column:camera_ultrawide" dynamodbav:"camera_ultrawide,omitempty" json:"camera_ultrawide"`
	CameraTelephoto *string `gorm:"column:camera_telephoto" dynamodbav:"camera_telephoto,omitempty" json:"camera_telephoto"`
	CameraFront     *string `gorm:"column:camera_front" dynamodbav:"camera_front,omitempty" json:"camera_front"`
	CameraVideo     *string `gorm:"column:camera_video" dynamodbav:"camera_video,omitempty" json:"camera_video"`
}

type BatterySpec struct {
	BatteryCapacity *int    `gorm:"column:battery_capacity" dynamodbav:"battery_capacity,omitempty" json:"battery_capacity" validate:"omitempty,gte=0"`
	BatteryCharging *string `gorm:"column:battery_charging" dynamodbav:"battery_charging,omitempty" json:"battery_charging"`
	BatteryWireless *string `gorm:"column:battery_wireless" dynamodbav:"battery_wireless,omitempty" json:"battery_wireless"`
}

type ConnectivitySpec struct {
	Network   *string `gorm:"column:network" dynamodbav:"network,omitempty" json:"network"`
	SIM       *string `gorm:"column:sim" dynamodbav:"sim,omitempty" json:"sim"`
	WiFi      *string `gorm:"column:wifi" dynamodbav:"wifi,omitempty" json:"wifi"`
	Bluetooth *string `gorm:"column:bluetooth" dynamodbav:"bluetooth,omitempty" json:"bluetooth"`
	NFC       *bool   `gorm:"column:nfc" dynamodbav:"nfc,omitempty" json:"nfc"`
	USBType   *string `gorm:"column:usb_type" dynamodbav:"usb_type,omitempty" json:"usb_type"`
	AudioJack *bool   `gorm:"column:audio_jack" dynamodbav:"audio_jack,omitempty" json:"audio_jack"`
}

type BodySpec struct {
	BodyDimensions *string `gorm:"column:body_dimensions" dynamodbav:"body_dimensions,omitempty" json:"body_dimensions"`
	BodyWeight     *int    `gorm:"column:body_weight" dynamodbav:"body_weight,omitempty" json:"body_weight" validate:"omitempty,gte=0"`
	BodyMaterial   *string `gorm:"column:body_material" dynamodbav:"body_material,omitempty" json:"body_material"`
	BodyProtection *string `gorm:"column:body_protection" dynamodbav:"body_protection,omitempty" json:"body_protection"`
}

type SecuritySpec struct {
	Fingerprint *string `gorm:"column:fingerprint" dynamodbav:"fingerprint,omitempty" json:"fingerprint"`
	FaceUnlock  *bool   `gorm:"column:face_unlock" dynamodbav:"face_unlock,omitempty" json:"face_unlock"`
	OS          *string `gorm:"column:os" dynamodbav:"os,omitempty" json:"os"`
	UI          *string `gorm:"column:ui" dynamodbav:"ui,omitempty" json:"ui"`
}

type AffiliateLinks struct {
	ShopeeLink    *string `gorm:"column:shopee_link" dynamodbav:"shopee_link,omitempty" json:"shopee_link" validate:"omitempty,url"`
	TokopediaLink *string `gorm:"column:tokopedia_link" dynamodbav:"tokopedia_link,omitempty" json:"tokopedia_link" validate:"omitempty,url"`
}

type Phone struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" dynamodbav:"id" json:"id"`
	BrandID     int64   `gorm:"not null;index" dynamodbav:"brand_id" json:"brand_id"`
	Brand       *Brand  `gorm:"foreignKey:BrandID;constraint:OnDelete:RESTRICT" dynamodbav:"-" json:"brand,omitempty"`
	Name        string  `gorm:"size:150;not null;index" dynamodbav:"name" json:"name"`
	Slug        string  `gorm:"size:170;uniqueIndex;not null" dynamodbav:"slug" json:"slug"`
	ImageURL    *string `gorm:"column:image_url" dynamodbav:"image_url,omitempty" json:"image_url"`
	PriceMin    *int64  `gorm:"column:price_min" dynamodbav:"price_min,omitempty" json:"price_min"`
	PriceMax    *int64  `gorm:"column:price_max" dynamodbav:"price_max,omitempty" json:"price_max"`
	ReleaseDate *Date   `gorm:"column:release_date" dynamodbav:"release_date,omitempty" json:"release_date"`

	DisplaySpec
	PerformanceSpec
	CameraSpec
	BatterySpec
	ConnectivitySpec
	BodySpec
	SecuritySpec
	AffiliateLinks

	IsFeatured bool      `gorm:"column:is_featured;not null;default:false" dynamodbav:"is_featured" json:"is_featured"`
	CreatedAt  time.Time `gorm:"autoCreateTime" dynamodbav:"created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" dynamodbav:"updated_at" json:"updated_at"`

	Reviews []Review `gorm:"foreignKey:PhoneID;constraint:OnDelete:CASCADE" dynamodbav:"-" json:"-"`
}

func (p Phone) GetID() int64      { return p.ID }
func (p *Phone) SetID(id int64)   { p.ID = id }
func (p Phone) TableName() string { return "phones" }

func (p *Phone) SetCreatedAt(t time.Time) { p.CreatedAt = t }
func (p *Phone) SetUpdatedAt(t time.Time) { p.UpdatedAt = t }
func (p Phone) GetCreatedAt() time.Time   { return p.CreatedAt }

// BrandName returns the joined brand name, or "" when the brand was not loaded.
func (p Phone) BrandName() string {
	if p.Brand == nil {
		return ""
	}
	return p.Brand.Name
}

// Normalize applies the storage rules to every optional field: empty text and
// zero numbers become NULL, the NFC, audio jack and face unlock flags default to false.
func (p *Phone) Normalize() {
	p.ImageURL = OptionalText(p.ImageURL)
	p.PriceMin = OptionalNumber(p.PriceMin)
	p.PriceMax = OptionalNumber(p.PriceMax)
	p.ReleaseDate = OptionalDate(p.ReleaseDate)

	d := &p.DisplaySpec
	d.DisplaySize = OptionalNumber(d.DisplaySize)
	d.DisplayType = OptionalText(d.DisplayType)
	d.DisplayResolution = OptionalText(d.DisplayResolution)
	d.DisplayRefreshRate = OptionalNumber(d.DisplayRefreshRate)
	d.DisplayProtection = OptionalText(d.DisplayProtection)

	f := &p.PerformanceSpec
	f.Chipset = OptionalText(f.Chipset)
	f.CPU = OptionalText(f.CPU)
	f.GPU = OptionalText(f.GPU)
	f.RAM = OptionalText(f.RAM)
	f.Storage = OptionalText(f.Storage)
	f.AntutuScore = OptionalNumber(f.AntutuScore)

	c := &p.CameraSpec
	c.CameraMain = OptionalText(c.CameraMain)
	c.CameraUltrawide = OptionalText(c.CameraUltrawide)
	c.CameraTelephoto = OptionalText(c.CameraTelephoto)
	c.CameraFront = OptionalText(c.CameraFront)
	c.CameraVideo = OptionalText(c.CameraVideo)

	b := &p.BatterySpec
	b.BatteryCapacity = OptionalNumber(b.BatteryCapacity)
	b.BatteryCharging = OptionalText(b.BatteryCharging)
	b.BatteryWireless = OptionalText(b.BatteryWireless)

	n := &p.ConnectivitySpec
	n.Network = OptionalText(n.Network)
	n.SIM = OptionalText(n.SIM)
	n.WiFi = OptionalText(n.WiFi)
	n.Bluetooth = OptionalText(n.Bluetooth)
	n.NFC = BoolDefaultFalse(n.NFC)
	n.USBType = OptionalText(n.USBType)
	n.AudioJack = BoolDefaultFalse(n.AudioJack)

	o := &p.BodySpec
	o.BodyDimensions = OptionalText(o.BodyDimensions)
	o.BodyWeight = OptionalNumber(o.BodyWeight)
	o.BodyMaterial = OptionalText(o.BodyMaterial)
	o.BodyProtection = OptionalText(o.BodyProtection)

	s := &p.SecuritySpec
	s.Fingerprint = OptionalText(s.Fingerprint)
	s.FaceUnlock = BoolDefaultFalse(s.FaceUnlock)
	s.OS = OptionalText(s.OS)
	s.UI = OptionalText(s.UI)

	a := &p.AffiliateLinks
	a.ShopeeLink = OptionalText(a.ShopeeLink)
	a.TokopediaLink = OptionalText(a.TokopediaLink)
}

var phoneMessages = map[string]string{
	"brand_id.required":        "Brand wajib dipilih",
	"name.required":            "Nama HP wajib diisi",
	"name.max":                 "Nama HP maksimal 150 karakter",
	"image_url.url":            "Image URL tidak valid",
	"price_min.gte":            "Harga minimum tidak boleh negatif",
	"price_max.gte":            "Harga maksimum tidak boleh negatif",
	"display_size.gte":         "Ukuran layar tidak boleh negatif",
	"display_refresh_rate.gte": "Refresh rate tidak boleh negatif",
	"antutu_score.gte":         "Skor Antutu tidak boleh negatif",
	"battery_capacity.gte":     "Kapasitas baterai tidak boleh negatif",
	"body_weight.gte":          "Berat tidak boleh negatif",
	"shopee_link.url":          "Link Shopee tidak valid",
	"tokopedia_link.url":       "Link Tokopedia tidak valid",
}

// PhoneInput is the payload of the admin phone form. Spec groups bind flat,
// the same way Phone serializes.
type PhoneInput struct {
	BrandID     int64   `json:"brand_id" validate:"required"`
	Name        string  `json:"name" validate:"required,max=150"`
	Slug        string  `json:"slug"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
	PriceMin    *int64  `json:"price_min" validate:"omitempty,gte=0"`
	PriceMax    *int64  `json:"price_max" validate:"omitempty,gte=0"`
	ReleaseDate *Date   `json:"release_date"`

	DisplaySpec
	PerformanceSpec
	CameraSpec
	BatterySpec
	ConnectivitySpec
	BodySpec
	SecuritySpec
	AffiliateLinks

	IsFeatured *bool `json:"is_featured"`
}

// Normalize drops blank links so an empty form field reads as absent.
func (in *PhoneInput) Normalize() {
	in.ImageURL = OptionalText(in.ImageURL)
	in.ShopeeLink = OptionalText(in.ShopeeLink)
	in.TokopediaLink = OptionalText(in.TokopediaLink)
}

// Validate checks field ranges and the price ordering. Blank links pass.
func (in PhoneInput) Validate() error {
	in.Normalize()
	if err := validateStruct(in, phoneMessages); err != nil {
		return err
	}
	if Slugify(in.Name) == "" && Slugify(in.Slug) == "" {
		return &ValidationError{Field: "slug", Message: "Slug tidak boleh kosong"}
	}
	return CheckPriceRange(in.PriceMin, in.PriceMax)
}

// Apply copies the input onto p and normalizes it. ID and timestamps are untouched.
func (in PhoneInput) Apply(p *Phone) {
	p.BrandID = in.BrandID
	p.Name = in.Name
	p.Slug = SlugOrName(in.Slug, in.Name)
	p.ImageURL = in.ImageURL
	p.PriceMin = in.PriceMin
	p.PriceMax = in.PriceMax
	p.ReleaseDate = in.ReleaseDate
	p.DisplaySpec = in.DisplaySpec
	p.PerformanceSpec = in.PerformanceSpec
	p.CameraSpec = in.CameraSpec
	p.BatterySpec = in.BatterySpec
	p.ConnectivitySpec = in.ConnectivitySpec
	p.BodySpec = in.BodySpec
	p.SecuritySpec = in.SecuritySpec
	p.AffiliateLinks = in.AffiliateLinks
	p.IsFeatured = in.IsFeatured != nil && *in.IsFeatured
	p.Normalize()
}

// CheckPriceRange enforces price_max >= price_min when both are present.
func CheckPriceRange(min, max *int64) error {
	if min != nil && max != nil && *min > 0 && *max > 0 && *max < *min {
		return &ValidationError{Field: "price_max", Message: "Harga maksimum harus lebih besar atau sama dengan harga minimum"}
	}
	return nil
}
