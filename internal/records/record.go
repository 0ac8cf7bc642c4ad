package records

import "slices"

// Record is one data row: an ordered mapping of header names to raw string values.
type Record struct {
	header []string
	values []string
	row    int
	line   int
}

// NewRecord builds a record from parallel header and value slices.
// It panics if the lengths differ.
func NewRecord(header, values []string) Record {
	if len(header) != len(values) {
		panic("records: header and values length mismatch")
	}
	return Record{header: slices.Clone(header), values: slices.Clone(values)}
}

// Header returns the field names in order.
func (r Record) Header() []string { return slices.Clone(r.header) }

// Values returns the raw values in header order.
func (r Record) Values() []string { return slices.Clone(r.values) }

// Len returns the number of fields.
func (r Record) Len() int { return len(r.values) }

// Row returns the 1-based data row index, or 0 for records not read from a source.
func (r Record) Row() int { return r.row }

// Line returns the source line the record starts on.
func (r Record) Line() int { return r.line }

// Get returns the value of the field called name. When the header repeats
// a name, the last column wins.
func (r Record) Get(name string) (string, bool) {
	for i := len(r.header) - 1; i >= 0; i-- {
		if r.header[i] == name {
			return r.values[i], true
		}
	}
	return "", false
}

// Each calls fn for every field in order.
func (r Record) Each(fn func(name, value string)) {
	for i, name := range r.header {
		fn(name, r.values[i])
	}
}
