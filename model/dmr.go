package model

// Classification tells a standard QAS from a component-sourced QAS-R.
type Classification string

const (
	ClassificationNone Classification = ""
	ClassificationQAS  Classification = "QAS"
	ClassificationQASR Classification = "QAS-R"
)

// Slot is one named entry of a DMR bundle. Link is nil when no file matched
// or the slot is text-only.
type Slot struct {
	Name string  `json:"name"`
	Link *string `json:"link"`
}

// NewSlot builds a slot, mapping an empty link to nil.
func NewSlot(name, link string) Slot {
	if link == "" {
		return Slot{Name: name}
	}
	return Slot{Name: name, Link: &link}
}

// HasLink reports whether the slot carries a link.
func (s Slot) HasLink() bool {
	return s.Link != nil && *s.Link != ""
}

// URL returns the slot link or an empty string.
func (s Slot) URL() string {
	if s.Link == nil {
		return ""
	}
	return *s.Link
}

// DMRBundle is the Device Master Record document set for one part.
type DMRBundle struct {
	MSS                 Slot `json:"mss"`
	MI                  Slot `json:"mi"`
	QAS                 Slot `json:"qas"`
	PSS                 Slot `json:"pss"`
	ShipperLabel        Slot `json:"shipper_label"`
	ContentLabel        Slot `json:"content_label"`
	DispenserLabel      Slot `json:"dispenser_label"`
	PrintMaterial       Slot `json:"print_mat"`
	DMR                 Slot `json:"dmr"`
	DCO                 Slot `json:"dco"`
	Ink                 Slot `json:"ink"`
	SpecialInstructions Slot `json:"special_instructions"`
}

// NamedSlot pairs a slot with its bundle key.
type NamedSlot struct {
	Key string
	Slot
}

// Slots returns every slot in display order.
func (b DMRBundle) Slots() []NamedSlot {
	return []NamedSlot{
		{"mss", b.MSS},
		{"mi", b.MI},
		{"qas", b.QAS},
		{"pss", b.PSS},
		{"shipper_label", b.ShipperLabel},
		{"content_label", b.ContentLabel},
		{"dispenser_label", b.DispenserLabel},
		{"print_mat", b.PrintMaterial},
		{"dmr", b.DMR},
		{"dco", b.DCO},
		{"ink", b.Ink},
		{"special_instructions", b.SpecialInstructions},
	}
}
