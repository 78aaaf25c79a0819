package compare

import (
	"github.com/quochao170402/cekspek/internal/domain"
	"github.com/quochao170402/cekspek/internal/format"
)

type Item struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type SheetSection struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Sheet is the detail page rendering of a single phone.
type Sheet struct {
	Price       string         `json:"price"`
	ReleaseDate string         `json:"release_date"`
	Sections    []SheetSection `json:"sections"`
}

// an empty value hides the row
type sheetCell func(p *domain.Phone) string

type sheetRow struct {
	label string
	value sheetCell
}

func optText(get func(p *domain.Phone) *string) sheetCell {
	return func(p *domain.Phone) string {
		if v := get(p); v != nil {
			return *v
		}
		return ""
	}
}

func optFlag(get func(p *domain.Phone) *bool) sheetCell {
	return func(p *domain.Phone) string {
		if v := get(p); v != nil {
			return format.Bool(v)
		}
		return ""
	}
}

// optUnit hides zero as well as nil.
func optUnit[T ~int | ~float64](get func(p *domain.Phone) *T, suffix string) sheetCell {
	return func(p *domain.Phone) string {
		if v := get(p); v != nil && *v != 0 {
			return format.WithUnit(v, suffix)
		}
		return ""
	}
}

var sheetLayout = []struct {
	title string
	rows  []sheetRow
}{
	{"Layar", []sheetRow{
		{"Ukuran", optUnit(func(p *domain.Phone) *float64 { return p.DisplaySize }, "inch")},
		{"Tipe", optText(func(p *domain.Phone) *string { return p.DisplayType })},
		{"Resolusi", optText(func(p *domain.Phone) *string { return p.DisplayResolution })},
		{"Refresh Rate", optUnit(func(p *domain.Phone) *int { return p.DisplayRefreshRate }, "Hz")},
		{"Proteksi", optText(func(p *domain.Phone) *string { return p.DisplayProtection })},
	}},
	{"Performa", []sheetRow{
		{"Chipset", optText(func(p *domain.Phone) *string { return p.Chipset })},
		{"CPU", optText(func(p *domain.Phone) *string { return p.CPU })},
		{"GPU", optText(func(p *domain.Phone) *string { return p.GPU })},
		{"RAM", optText(func(p *domain.Phone) *string { return p.RAM })},
		{"Storage", optText(func(p *domain.Phone) *string { return p.Storage })},
		{"Antutu Score", func(p *domain.Phone) string {
			if p.AntutuScore == nil || *p.AntutuScore == 0 {
				return ""
			}
			return format.Thousands(*p.AntutuScore)
		}},
	}},
	{"Kamera", []sheetRow{
		{"Kamera Utama", optText(func(p *domain.Phone) *string { return p.CameraMain })},
		{"Ultrawide", optText(func(p *domain.Phone) *string { return p.CameraUltrawide })},
		{"Telephoto", optText(func(p *domain.Phone) *string { return p.CameraTelephoto })},
		{"Video", optText(func(p *domain.Phone) *string { return p.CameraVideo })},
		{"Kamera Depan", optText(func(p *domain.Phone) *string { return p.CameraFront })},
	}},
	{"Baterai", []sheetRow{
		{"Kapasitas", optUnit(func(p *domain.Phone) *int { return p.BatteryCapacity }, "mAh")},
		{"Pengisian Daya", optText(func(p *domain.Phone) *string { return p.BatteryCharging })},
		{"Wireless Charging", optText(func(p *domain.Phone) *string { return p.BatteryWireless })},
	}},
	{"Konektivitas", []sheetRow{
		{"Jaringan", optText(func(p *domain.Phone) *string { return p.Network })},
		{"SIM", optText(func(p *domain.Phone) *string { return p.SIM })},
		{"WiFi", optText(func(p *domain.Phone) *string { return p.WiFi })},
		{"Bluetooth", optText(func(p *domain.Phone) *string { return p.Bluetooth })},
		{"NFC", optFlag(func(p *domain.Phone) *bool { return p.NFC })},
		{"USB", optText(func(p *domain.Phone) *string { return p.USBType })},
		{"Jack Audio 3.5mm", optFlag(func(p *domain.Phone) *bool { return p.AudioJack })},
	}},
	{"Body", []sheetRow{
		{"Dimensi", optText(func(p *domain.Phone) *string { return p.BodyDimensions })},
		{"Berat", optUnit(func(p *domain.Phone) *int { return p.BodyWeight }, "gram")},
		{"Material", optText(func(p *domain.Phone) *string { return p.BodyMaterial })},
		{"Ketahanan", optText(func(p *domain.Phone) *string { return p.BodyProtection })},
	}},
	{"Keamanan & Software", []sheetRow{
		{"Fingerprint", optText(func(p *domain.Phone) *string { return p.Fingerprint })},
		{"Face Unlock", optFlag(func(p *domain.Phone) *bool { return p.FaceUnlock })},
		{"OS", optText(func(p *domain.Phone) *string { return p.OS })},
		{"UI", optText(func(p *domain.Phone) *string { return p.UI })},
	}},
}

// PriceRange renders "Rp a - Rp b" when a distinct maximum is known.
func PriceRange(min, max *int64) string {
	out := format.RupiahOrEmpty(min)
	if max != nil && *max != 0 && (min == nil || *max != *min) {
		out += " - " + format.RupiahOrEmpty(max)
	}
	return out
}

// SpecSheet renders the detail sections of p, leaving out unknown values.
// Sections are kept even when all of their rows are empty.
func SpecSheet(p domain.Phone) Sheet {
	s := Sheet{
		Price:       PriceRange(p.PriceMin, p.PriceMax),
		ReleaseDate: format.Empty,
		Sections:    make([]SheetSection, 0, len(sheetLayout)),
	}
	if p.ReleaseDate != nil && !p.ReleaseDate.IsZero() {
		s.ReleaseDate = format.LongDate(p.ReleaseDate.Time)
	}
	for _, sd := range sheetLayout {
		sec := SheetSection{Title: sd.title, Items: []Item{}}
		for _, r := range sd.rows {
			if v := r.value(&p); v != "" {
				sec.Items = append(sec.Items, Item{Label: r.label, Value: v})
			}
		}
		s.Sections = append(s.Sections, sec)
	}
	return s
}
