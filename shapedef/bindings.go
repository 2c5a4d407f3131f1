package shapedef

import (
	"sort"

	"github.com/pkg/errors"
)

// Binding is a member resolved to its wire location.
type Binding struct {
	Member       *Member
	Location     Location
	LocationName string
	Target       *Shape
}

// BindingTable holds the bindings of one shape ordered by member name.
type BindingTable []*Binding

// Rest returns the bindings handled by the REST binding functions: header,
// prefix headers, label and query. Payload and document members are left to
// the document codec.
func (t BindingTable) Rest() BindingTable {
	var rv BindingTable
	for _, b := range t {
		if b.Location.IsRest() {
			rv = append(rv, b)
		}
	}
	return rv
}

// Has reports whether any binding sits at loc.
func (t BindingTable) Has(loc Location) bool {
	for _, b := range t {
		if b.Location == loc {
			return true
		}
	}
	return false
}

// HasRest reports whether any binding is REST-bound.
func (t BindingTable) HasRest() bool {
	return len(t.Rest()) > 0
}

// RequestBindings returns the bindings of an operation's input structure.
func (m *Model) RequestBindings(op *Operation) (BindingTable, error) {
	if op.Input == "" {
		return nil, &CodegenError{Shape: op.ID, Msg: "missing input shape for operation"}
	}
	return m.ShapeBindings(op.Input)
}

// ResponseBindings returns the bindings of an operation's output structure.
func (m *Model) ResponseBindings(op *Operation) (BindingTable, error) {
	if op.Output == "" {
		return nil, &CodegenError{Shape: op.ID, Msg: "missing output shape for operation"}
	}
	return m.ShapeBindings(op.Output)
}

// ShapeBindings returns the bindings of any structure, including error
// structures. Members without a location are skipped. Two bindings for the
// same member name are a fatal error.
func (m *Model) ShapeBindings(id ShapeID) (BindingTable, error) {
	s, err := m.Expect(id)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(s.Members))
	var table BindingTable
	for _, mem := range s.Members {
		if mem.Location == LocationNone {
			continue
		}
		if seen[mem.Name] {
			return nil, &CodegenError{Shape: id, Msg: "found duplicate binding entries for member " + mem.Name + " of shape"}
		}
		seen[mem.Name] = true
		target, err := m.Target(mem)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot resolve binding of %s", id)
		}
		name := mem.LocationName
		if name == "" && mem.Location == LocationLabel {
			name = mem.Name
		}
		table = append(table, &Binding{
			Member:       mem,
			Location:     mem.Location,
			LocationName: name,
			Target:       target,
		})
	}
	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Member.Name < table[j].Member.Name
	})
	return table, nil
}

// DetermineTimestampFormat resolves the wire format of a timestamp bound at
// loc. Formats are taken in order from the binding member, the collection
// member when the binding targets a list or set, and the target shape.
// Otherwise headers use http-date, labels and queries use date-time, and
// anything else uses the protocol's document default.
func DetermineTimestampFormat(loc Location, def TimestampFormat, sources ...TimestampFormat) TimestampFormat {
	for _, f := range sources {
		if f != FormatUnset {
			return f
		}
	}
	switch loc {
	case LocationHeader, LocationPrefixHeaders:
		return FormatHTTPDate
	case LocationLabel, LocationQuery:
		return FormatDateTime
	}
	return def
}
