package domain

import "strings"

// NotAvailable is the sentinel used for any field a source does not provide.
const NotAvailable = "N/A"

// Field identifies one logical attribute of a medicine record.
type Field string

// Logical medicine fields.
const (
	FieldBrandName    Field = "brand_name"
	FieldGenericName  Field = "generic_name"
	FieldComposition  Field = "composition"
	FieldUses         Field = "uses"
	FieldSideEffects  Field = "side_effects"
	FieldManufacturer Field = "manufacturer"
)

// Fields lists the logical fields in canonical column order.
func Fields() []Field {
	return []Field{
		FieldBrandName,
		FieldGenericName,
		FieldComposition,
		FieldUses,
		FieldSideEffects,
		FieldManufacturer,
	}
}

// NameColumnAliases is the preference list used to pick the column whose
// values are compared against a candidate name.
var NameColumnAliases = []string{"brand_name", "brandname", "name", "medicine_name", "product_name"}

// fieldAliases holds the ordered synonyms for each output field.
var fieldAliases = map[Field][]string{
	FieldBrandName:    {"brand_name", "brandname", "name"},
	FieldGenericName:  {"generic_name", "genericname"},
	FieldComposition:  {"composition", "ingredients"},
	FieldUses:         {"uses", "indications"},
	FieldSideEffects:  {"side_effects", "sideeffects", "adverse_effects"},
	FieldManufacturer: {"manufacturer", "company"},
}

// Aliases returns the ordered column synonyms for a field.
func Aliases(f Field) []string {
	out := make([]string, len(fieldAliases[f]))
	copy(out, fieldAliases[f])
	return out
}

// NormaliseColumn lower-cases a header and replaces spaces with underscores.
func NormaliseColumn(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// MedicineRecord is one row of the tabular corpus after alias resolution.
// Records are values; a corpus never mutates them after load.
type MedicineRecord struct {
	// Key is the value of the resolved name column. Candidates are scored against it.
	Key string

	BrandName    string
	GenericName  string
	Composition  string
	Uses         string
	SideEffects  string
	Manufacturer string
}

// Value returns the record's value for a logical field.
func (r MedicineRecord) Value(f Field) string {
	switch f {
	case FieldBrandName:
		return r.BrandName
	case FieldGenericName:
		return r.GenericName
	case FieldComposition:
		return r.Composition
	case FieldUses:
		return r.Uses
	case FieldSideEffects:
		return r.SideEffects
	case FieldManufacturer:
		return r.Manufacturer
	default:
		return ""
	}
}

// Table is a parsed tabular source before alias resolution.
type Table struct {
	// Name is the source file name.
	Name string

	// Columns holds the normalised header names.
	Columns []string

	// Rows holds one slice per data row, aligned with Columns.
	Rows [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Row is a single tabular row keyed by normalised column name.
type Row map[string]string

// Lookup walks an alias list and returns the first non-empty value.
func (r Row) Lookup(aliases []string) (string, bool) {
	for _, alias := range aliases {
		if v := strings.TrimSpace(r[alias]); v != "" {
			return v, true
		}
	}
	return "", false
}

// ResolveNameColumn picks the match-key column from the available columns.
// It returns the column and whether it came from the alias list; when no
// alias is present the first column is assumed.
func ResolveNameColumn(columns []string) (string, bool) {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[c] = struct{}{}
	}
	for _, alias := range NameColumnAliases {
		if _, ok := present[alias]; ok {
			return alias, true
		}
	}
	if len(columns) == 0 {
		return "", false
	}
	return columns[0], false
}

// NewMedicineRecord resolves a raw row into the canonical schema.
// Missing fields default to NotAvailable; the brand name falls back to the
// match key so that it is never empty when the key is not.
func NewMedicineRecord(row Row, nameColumn string) MedicineRecord {
	key := strings.TrimSpace(row[nameColumn])

	rec := MedicineRecord{Key: key}
	if v, ok := row.Lookup(fieldAliases[FieldBrandName]); ok {
		rec.BrandName = v
	} else {
		rec.BrandName = key
	}
	rec.GenericName = lookupOrNA(row, FieldGenericName)
	rec.Composition = lookupOrNA(row, FieldComposition)
	rec.Uses = lookupOrNA(row, FieldUses)
	rec.SideEffects = lookupOrNA(row, FieldSideEffects)
	rec.Manufacturer = lookupOrNA(row, FieldManufacturer)
	return rec
}

func lookupOrNA(row Row, f Field) string {
	if v, ok := row.Lookup(fieldAliases[f]); ok {
		return v
	}
	return NotAvailable
}
