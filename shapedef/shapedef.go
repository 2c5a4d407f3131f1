// Package shapedef holds the in-memory service schema that binding
// generation reads from: shapes addressed by stable ids, their members, the
// operations of a service and the HTTP binding locations of each member.
//
// Shapes live in a single arena (Model) and refer to each other only by
// ShapeID, so self-referential and cyclic schemas need no special handling.
package shapedef

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ShapeID identifies a shape, e.g. "example.weather#GetForecastInput". Member
// ids append "$member".
type ShapeID string

// Namespace returns the portion of the id before '#'.
func (id ShapeID) Namespace() string {
	s := string(id)
	if i := strings.IndexByte(s, '#'); i >= 0 {
		return s[:i]
	}
	return ""
}

// Name returns the shape name, without namespace or member suffix.
func (id ShapeID) Name() string {
	s := string(id)
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.IndexByte(s, '$'); i >= 0 {
		s = s[:i]
	}
	return s
}

// Member returns the member name of a member id, or "".
func (id ShapeID) Member() string {
	s := string(id)
	if i := strings.IndexByte(s, '$'); i >= 0 {
		return s[i+1:]
	}
	return ""
}

// WithMember returns the id of member name within id.
func (id ShapeID) WithMember(name string) ShapeID {
	return ShapeID(string(id) + "$" + name)
}

// Shape is a typed node of the schema graph.
type Shape struct {
	ID   ShapeID
	Kind Kind
	// Members are ordered by name. Lists and sets have one member named
	// "member", maps have "key" and "value".
	Members []*Member
	// EnumValues is non-nil when a string shape is enum-kind.
	EnumValues []string
	// TimestampFormat applies to timestamp shapes that declare one.
	TimestampFormat TimestampFormat
	// Error is "client" or "server" for error structures, "" otherwise.
	Error string
}

// IsEnum reports whether s is a string shape constrained to enum values.
func (s *Shape) IsEnum() bool {
	return s.Kind == KindString && s.EnumValues != nil
}

// IsError reports whether s is an error structure.
func (s *Shape) IsError() bool {
	return s.Error != ""
}

// Member returns the member named name, or nil.
func (s *Shape) Member(name string) *Member {
	for _, m := range s.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Member is a named field of a structure, union, collection or map. Target is
// a lookup-only reference into the owning Model.
type Member struct {
	ID     ShapeID
	Name   string
	Target ShapeID
	// Location is where the member travels on the wire; LocationName is the
	// header name, header prefix, query parameter or label it binds to.
	Location        Location
	LocationName    string
	TimestampFormat TimestampFormat
	Required        bool
}

// HTTPTrait is the method and URI template an operation binds to.
type HTTPTrait struct {
	Method string
	URI    string
	Code   int
}

// Operation has exactly one input and one output structure. A zero Input or
// Output means the schema is missing it, which generation rejects.
type Operation struct {
	ID     ShapeID
	Input  ShapeID
	Output ShapeID
	Errors []ShapeID
	// HTTP is nil for operations without HTTP bindings.
	HTTP *HTTPTrait
}

// Model is the arena of shapes for one service.
type Model struct {
	Service    ShapeID
	Operations []*Operation
	shapes     map[ShapeID]*Shape
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{shapes: make(map[ShapeID]*Shape)}
}

// AddShape stores s in the model. Member lists are sorted by name and member
// ids filled in when missing.
func (m *Model) AddShape(s *Shape) error {
	if s == nil || s.ID == "" {
		return errors.New("cannot add shape without id")
	}
	if _, ok := m.shapes[s.ID]; ok {
		return errors.Errorf("duplicate shape id %q", s.ID)
	}
	sort.SliceStable(s.Members, func(i, j int) bool {
		return s.Members[i].Name < s.Members[j].Name
	})
	for _, mem := range s.Members {
		if mem.ID == "" {
			mem.ID = s.ID.WithMember(mem.Name)
		}
	}
	m.shapes[s.ID] = s
	return nil
}

// AddOperation appends op, keeping operations ordered by id.
func (m *Model) AddOperation(op *Operation) {
	m.Operations = append(m.Operations, op)
	sort.SliceStable(m.Operations, func(i, j int) bool {
		return m.Operations[i].ID < m.Operations[j].ID
	})
}

// Shape looks up id without creating anything.
func (m *Model) Shape(id ShapeID) (*Shape, bool) {
	s, ok := m.shapes[id]
	return s, ok
}

// Expect looks up id and fails with an error naming it when absent.
func (m *Model) Expect(id ShapeID) (*Shape, error) {
	s, ok := m.shapes[id]
	if !ok {
		return nil, &CodegenError{Shape: id, Msg: "shape not found in model"}
	}
	return s, nil
}

// Target resolves the shape a member points at.
func (m *Model) Target(mem *Member) (*Shape, error) {
	s, ok := m.shapes[mem.Target]
	if !ok {
		return nil, &CodegenError{Shape: mem.ID, Msg: "member target " + string(mem.Target) + " not found in model"}
	}
	return s, nil
}

// ShapeIDs returns every shape id in lexical order.
func (m *Model) ShapeIDs() []ShapeID {
	ids := make([]ShapeID, 0, len(m.shapes))
	for id := range m.shapes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Operation returns the operation with the given id, or nil.
func (m *Model) Operation(id ShapeID) *Operation {
	for _, op := range m.Operations {
		if op.ID == id {
			return op
		}
	}
	return nil
}

// CodegenError is a fatal schema or generation error about one shape,
// member or operation.
type CodegenError struct {
	Shape ShapeID
	Msg   string
}

func (e *CodegenError) Error() string {
	return e.Msg + ": " + string(e.Shape)
}
