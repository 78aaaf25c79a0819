// Package compare lays out phones side by side as sections of formatted rows.
package compare

import (
	"fmt"

	"github.com/quochao170402/cekspek/internal/domain"
	"github.com/quochao170402/cekspek/internal/format"
)

const (
	MinPhones = 2
	MaxPhones = 3
)

type Column struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	BrandName string  `json:"brand_name"`
	ImageURL  *string `json:"image_url"`
}

type Row struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

type Section struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

// Table holds one value per column in every row, in column order.
type Table struct {
	Columns  []Column  `json:"columns"`
	Sections []Section `json:"sections"`
}

type cell func(p *domain.Phone, avg float64) string

type rowDef struct {
	label string
	value cell
}

type sectionDef struct {
	title string
	rows  []rowDef
}

func text(get func(p *domain.Phone) *string) cell {
	return func(p *domain.Phone, _ float64) string { return format.Text(get(p)) }
}

func flag(get func(p *domain.Phone) *bool) cell {
	return func(p *domain.Phone, _ float64) string { return format.Bool(get(p)) }
}

func unit[T ~int | ~int64 | ~float64](get func(p *domain.Phone) *T, suffix string) cell {
	return func(p *domain.Phone, _ float64) string { return format.WithUnit(get(p), suffix) }
}

var layout = []sectionDef{
	{"Harga & Rating", []rowDef{
		{"Harga", func(p *domain.Phone, _ float64) string { return format.RupiahOrEmpty(p.PriceMin) }},
		{"Rating", func(_ *domain.Phone, avg float64) string { return format.RatingLabel(avg) }},
	}},
	{"Performa & Benchmark", []rowDef{
		{"Chipset", text(func(p *domain.Phone) *string { return p.Chipset })},
		{"CPU", text(func(p *domain.Phone) *string { return p.CPU })},
		{"GPU", text(func(p *domain.Phone) *string { return p.GPU })},
		{"RAM", text(func(p *domain.Phone) *string { return p.RAM })},
		{"Storage", text(func(p *domain.Phone) *string { return p.Storage })},
		{"Antutu Benchmark", func(p *domain.Phone, _ float64) string { return format.ThousandsOrEmpty(p.AntutuScore) }},
	}},
	{"Layar", []rowDef{
		{"Ukuran", unit(func(p *domain.Phone) *float64 { return p.DisplaySize }, "inch")},
		{"Tipe Panel", text(func(p *domain.Phone) *string { return p.DisplayType })},
		{"Resolusi", text(func(p *domain.Phone) *string { return p.DisplayResolution })},
		{"Refresh Rate", unit(func(p *domain.Phone) *int { return p.DisplayRefreshRate }, "Hz")},
		{"Proteksi", text(func(p *domain.Phone) *string { return p.DisplayProtection })},
	}},
	{"Kamera Belakang", []rowDef{
		{"Kamera Utama", text(func(p *domain.Phone) *string { return p.CameraMain })},
		{"Ultrawide", text(func(p *domain.Phone) *string { return p.CameraUltrawide })},
		{"Telephoto", text(func(p *domain.Phone) *string { return p.CameraTelephoto })},
		{"Video", text(func(p *domain.Phone) *string { return p.CameraVideo })},
	}},
	{"Kamera Depan", []rowDef{
		{"Kamera Depan", text(func(p *domain.Phone) *string { return p.CameraFront })},
	}},
	{"Baterai", []rowDef{
		{"Kapasitas", unit(func(p *domain.Phone) *int { return p.BatteryCapacity }, "mAh")},
		{"Pengisian Daya", text(func(p *domain.Phone) *string { return p.BatteryCharging })},
		{"Wireless Charging", text(func(p *domain.Phone) *string { return p.BatteryWireless })},
	}},
	{"Konektivitas", []rowDef{
		{"Jaringan", text(func(p *domain.Phone) *string { return p.Network })},
		{"SIM", text(func(p *domain.Phone) *string { return p.SIM })},
		{"WiFi", text(func(p *domain.Phone) *string { return p.WiFi })},
		{"Bluetooth", text(func(p *domain.Phone) *string { return p.Bluetooth })},
		{"NFC", flag(func(p *domain.Phone) *bool { return p.NFC })},
		{"USB", text(func(p *domain.Phone) *string { return p.USBType })},
		{"Audio Jack 3.5mm", flag(func(p *domain.Phone) *bool { return p.AudioJack })},
	}},
	{"Desain & Body", []rowDef{
		{"Dimensi", text(func(p *domain.Phone) *string { return p.BodyDimensions })},
		{"Berat", unit(func(p *domain.Phone) *int { return p.BodyWeight }, "gram")},
		{"Material", text(func(p *domain.Phone) *string { return p.BodyMaterial })},
		{"Ketahanan", text(func(p *domain.Phone) *string { return p.BodyProtection })},
	}},
	{"Keamanan & Software", []rowDef{
		{"Fingerprint", text(func(p *domain.Phone) *string { return p.Fingerprint })},
		{"Face Unlock", flag(func(p *domain.Phone) *bool { return p.FaceUnlock })},
		{"OS", text(func(p *domain.Phone) *string { return p.OS })},
		{"UI", text(func(p *domain.Phone) *string { return p.UI })},
	}},
}

// Compare builds the comparison table for 2 or 3 phones. ratings maps phone id
// to its average; a missing entry means the phone has no reviews.
func Compare(phones []domain.Phone, ratings map[int64]float64) (Table, error) {
	if len(phones) < MinPhones || len(phones) > MaxPhones {
		return Table{}, &domain.ValidationError{
			Field:   "ids",
			Message: fmt.Sprintf("Pilih %d sampai %d HP untuk dibandingkan", MinPhones, MaxPhones),
		}
	}

	t := Table{
		Columns:  make([]Column, len(phones)),
		Sections: make([]Section, len(layout)),
	}
	for i := range phones {
		p := &phones[i]
		t.Columns[i] = Column{ID: p.ID, Name: p.Name, Slug: p.Slug, BrandName: p.BrandName(), ImageURL: p.ImageURL}
	}
	for si, sd := range layout {
		sec := Section{Title: sd.title, Rows: make([]Row, len(sd.rows))}
		for ri, rd := range sd.rows {
			values := make([]string, len(phones))
			for i := range phones {
				values[i] = rd.value(&phones[i], ratings[phones[i].ID])
			}
			sec.Rows[ri] = Row{Label: rd.label, Values: values}
		}
		t.Sections[si] = sec
	}
	return t, nil
}
