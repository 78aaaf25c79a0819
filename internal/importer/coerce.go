package importer

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/quochao170402/cekspek/internal/domain"
)

// Values that are missing, null, false, zero or empty are all stored as NULL.
func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case json.Number:
		f, err := x.Float64()
		return err == nil && f == 0
	}
	return false
}

func optionalText(v any) *string {
	if isBlank(v) {
		return nil
	}
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case json.Number:
		s = x.String()
	default:
		s = fmt.Sprint(x)
	}
	return domain.OptionalText(&s)
}

func number(v any) (json.Number, error) {
	switch x := v.(type) {
	case json.Number:
		return x, nil
	case string:
		n := json.Number(strings.TrimSpace(x))
		if _, err := n.Float64(); err != nil {
			return "", fmt.Errorf("invalid input syntax for number: %q", x)
		}
		return n, nil
	default:
		return "", fmt.Errorf("invalid number value: %v", x)
	}
}

func optionalInt(v any) (*int64, error) {
	if isBlank(v) {
		return nil, nil
	}
	n, err := number(v)
	if err != nil {
		return nil, err
	}
	i, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil || f != math.Trunc(f) {
			return nil, fmt.Errorf("invalid input syntax for type integer: %q", n.String())
		}
		i = int64(f)
	}
	return domain.OptionalNumber(&i), nil
}

func optionalSmallInt(v any) (*int, error) {
	i, err := optionalInt(v)
	if err != nil || i == nil {
		return nil, err
	}
	if *i > math.MaxInt32 || *i < math.MinInt32 {
		return nil, fmt.Errorf("value %d is out of range for type integer", *i)
	}
	n := int(*i)
	return &n, nil
}

func optionalFloat(v any) (*float64, error) {
	if isBlank(v) {
		return nil, nil
	}
	n, err := number(v)
	if err != nil {
		return nil, err
	}
	f, err := n.Float64()
	if err != nil {
		return nil, err
	}
	return domain.OptionalNumber(&f), nil
}

func optionalDate(v any) (*domain.Date, error) {
	if isBlank(v) {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("invalid input syntax for type date: %v", v)
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("invalid input syntax for type date: %q", s)
	}
	return &d, nil
}

// boolDefaultFalse keeps explicit values and turns a missing one into false.
func boolDefaultFalse(v any) (bool, error) {
	switch x := v.(type) {
	case nil:
		return false, nil
	case bool:
		return x, nil
	case string:
		b, err := strconv.ParseBool(x)
		if err != nil {
			return false, fmt.Errorf("invalid input syntax for type boolean: %q", x)
		}
		return b, nil
	default:
		return false, fmt.Errorf("invalid input syntax for type boolean: %v", x)
	}
}

type coercer struct {
	fields map[string]any
	err    error
}

func (c *coercer) text(key string) *string {
	return optionalText(c.fields[key])
}

func (c *coercer) bigint(key string) *int64 {
	n, err := optionalInt(c.fields[key])
	c.keep(key, err)
	return n
}

func (c *coercer) integer(key string) *int {
	n, err := optionalSmallInt(c.fields[key])
	c.keep(key, err)
	return n
}

func (c *coercer) decimal(key string) *float64 {
	f, err := optionalFloat(c.fields[key])
	c.keep(key, err)
	return f
}

func (c *coercer) date(key string) *domain.Date {
	d, err := optionalDate(c.fields[key])
	c.keep(key, err)
	return d
}

func (c *coercer) flag(key string) *bool {
	b, err := boolDefaultFalse(c.fields[key])
	c.keep(key, err)
	return &b
}

// keep records the first failure only.
func (c *coercer) keep(key string, err error) {
	if err != nil && c.err == nil {
		c.err = fmt.Errorf("%s: %w", key, err)
	}
}

// ToPhone converts a row into a phone of the given brand, with the slug
// derived from the name.
func ToPhone(r Row, brandID int64) (domain.Phone, error) {
	c := &coercer{fields: r.Fields}
	p := domain.Phone{
		BrandID:     brandID,
		Name:        r.Name,
		Slug:        domain.Slugify(r.Name),
		ImageURL:    c.text("image_url"),
		PriceMin:    c.bigint("price_min"),
		PriceMax:    c.bigint("price_max"),
		ReleaseDate: c.date("release_date"),
	}
	p.DisplaySpec = domain.DisplaySpec{
		DisplaySize:        c.decimal("display_size"),
		DisplayType:        c.text("display_type"),
		DisplayResolution:  c.text("display_resolution"),
		DisplayRefreshRate: c.integer("display_refresh_rate"),
		DisplayProtection:  c.text("display_protection"),
	}
	p.PerformanceSpec = domain.PerformanceSpec{
		Chipset:     c.text("chipset"),
		CPU:         c.text("cpu"),
		GPU:         c.text("gpu"),
		RAM:         c.text("ram"),
		Storage:     c.text("storage"),
		AntutuScore: c.integer("antutu_score"),
	}
	p.CameraSpec = domain.CameraSpec{
		CameraMain:      c.text("camera_main"),
		CameraUltrawide: c.text("camera_ultrawide"),
		CameraTelephoto: c.text("camera_telephoto"),
		CameraFront:     c.text("camera_front"),
		CameraVideo:     c.text("camera_video"),
	}
	p.BatterySpec = domain.BatterySpec{
		BatteryCapacity: c.integer("battery_capacity"),
		BatteryCharging: c.text("battery_charging"),
		BatteryWireless: c.text("battery_wireless"),
	}
	p.ConnectivitySpec = domain.ConnectivitySpec{
		Network:   c.text("network"),
		SIM:       c.text("sim"),
		WiFi:      c.text("wifi"),
		Bluetooth: c.text("bluetooth"),
		NFC:       c.flag("nfc"),
		USBType:   c.text("usb_type"),
		AudioJack: c.flag("audio_jack"),
	}
	p.BodySpec = domain.BodySpec{
		BodyDimensions: c.text("body_dimensions"),
		BodyWeight:     c.integer("body_weight"),
		BodyMaterial:   c.text("body_material"),
		BodyProtection: c.text("body_protection"),
	}
	p.SecuritySpec = domain.SecuritySpec{
		Fingerprint: c.text("fingerprint"),
		FaceUnlock:  c.flag("face_unlock"),
		OS:          c.text("os"),
		UI:          c.text("ui"),
	}
	p.AffiliateLinks = domain.AffiliateLinks{
		ShopeeLink:    c.text("shopee_link"),
		TokopediaLink: c.text("tokopedia_link"),
	}
	p.IsFeatured = *c.flag("is_featured")
	if c.err != nil {
		return domain.Phone{}, c.err
	}
	return p, nil
}
