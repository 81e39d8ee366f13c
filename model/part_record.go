package model

// Collection names one of the three part record collections.
type Collection string

const (
	CollectionPackage       Collection = "pkg"
	CollectionManufacturing Collection = "mfg"
	CollectionComponent     Collection = "component"
)

// Collections lists every collection in query order.
var Collections = []Collection{CollectionPackage, CollectionManufacturing, CollectionComponent}

// DocumentFields names the record fields a collection stores document ids under.
type DocumentFields struct {
	MSS string
	MI  string
	QAS string
	PSS string
}

var (
	packageFields = DocumentFields{
		MSS: "mss_msd_id",
		MI:  "mi_id",
		QAS: "qas",
		PSS: "pss_id",
	}
	manufacturingFields = DocumentFields{
		MSS: "mssmsd_id",
		MI:  "mi_id",
		QAS: "qas_id",
		PSS: "pss_id",
	}
)

// FieldsFor returns the document field names used by a collection.
// Package and component records share one naming scheme.
func FieldsFor(c Collection) DocumentFields {
	if c == CollectionManufacturing {
		return manufacturingFields
	}
	return packageFields
}

// Label field names, identical across collections.
const (
	FieldPart                = "part"
	FieldShipperLabel        = "shipper_label"
	FieldContentLabel        = "content_card"
	FieldDispenserLabel      = "dispenser_label"
	FieldPrintMaterial       = "print_mat"
	FieldDCONumber           = "dco_number"
	FieldInkPartNumber       = "ink_part_number"
	FieldSpecialInstructions = "special_instructions"
)

// PartRecord is a part document converted out of its collection-specific shape.
// Absent fields are empty strings.
type PartRecord struct {
	Collection Collection `json:"collection"`
	Part       string     `json:"part"`

	MSSID string `json:"mss_id"`
	MIID  string `json:"mi_id"`
	QASID string `json:"qas_id"`
	PSSID string `json:"pss_id"`

	ShipperLabel        string `json:"shipper_label"`
	ContentLabel        string `json:"content_label"`
	DispenserLabel      string `json:"dispenser_label"`
	PrintMaterial       string `json:"print_mat"`
	DCONumber           string `json:"dco_number"`
	InkPartNumber       string `json:"ink_part_number"`
	SpecialInstructions string `json:"special_instructions"`
}

// NewPartRecord builds a PartRecord from a raw field lookup, reading the
// document ids from the field names owned by the collection.
func NewPartRecord(c Collection, field func(name string) string) PartRecord {
	fields := FieldsFor(c)
	return PartRecord{
		Collection:          c,
		Part:                field(FieldPart),
		MSSID:               field(fields.MSS),
		MIID:                field(fields.MI),
		QASID:               field(fields.QAS),
		PSSID:               field(fields.PSS),
		ShipperLabel:        field(FieldShipperLabel),
		ContentLabel:        field(FieldContentLabel),
		DispenserLabel:      field(FieldDispenserLabel),
		PrintMaterial:       field(FieldPrintMaterial),
		DCONumber:           field(FieldDCONumber),
		InkPartNumber:       field(FieldInkPartNumber),
		SpecialInstructions: field(FieldSpecialInstructions),
	}
}
