package shapedef

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Trait ids read from the JSON AST.
const (
	traitHTTP          = "smithy.api#http"
	traitHTTPHeader    = "smithy.api#httpHeader"
	traitPrefixHeaders = "smithy.api#httpPrefixHeaders"
	traitHTTPLabel     = "smithy.api#httpLabel"
	traitHTTPQuery     = "smithy.api#httpQuery"
	traitHTTPPayload   = "smithy.api#httpPayload"
	traitTimestampFmt  = "smithy.api#timestampFormat"
	traitRequired      = "smithy.api#required"
	traitEnum          = "smithy.api#enum"
	traitEnumValue     = "smithy.api#enumValue"
	traitError         = "smithy.api#error"
)

type astDocument struct {
	Smithy string               `json:"smithy"`
	Shapes map[string]*astShape `json:"shapes"`
}

type astRef struct {
	Target string `json:"target"`
}

type astMember struct {
	Target string                     `json:"target"`
	Traits map[string]json.RawMessage `json:"traits"`
}

type astShape struct {
	Type       string                     `json:"type"`
	Members    map[string]*astMember      `json:"members"`
	Member     *astMember                 `json:"member"`
	Key        *astMember                 `json:"key"`
	Value      *astMember                 `json:"value"`
	Input      *astRef                    `json:"input"`
	Output     *astRef                    `json:"output"`
	Errors     []astRef                   `json:"errors"`
	Operations []astRef                   `json:"operations"`
	Traits     map[string]json.RawMessage `json:"traits"`
}

// preludeShapes are the simple shapes of the smithy.api namespace that
// models refer to without declaring.
var preludeShapes = map[string]Kind{
	"Blob":             KindBlob,
	"Boolean":          KindBoolean,
	"String":           KindString,
	"Byte":             KindByte,
	"Short":            KindShort,
	"Integer":          KindInteger,
	"Long":             KindLong,
	"Float":            KindFloat,
	"Double":           KindDouble,
	"BigInteger":       KindBigInteger,
	"BigDecimal":       KindBigDecimal,
	"Timestamp":        KindTimestamp,
	"Document":         KindDocument,
	"PrimitiveBoolean": KindBoolean,
	"PrimitiveByte":    KindByte,
	"PrimitiveShort":   KindShort,
	"PrimitiveInteger": KindInteger,
	"PrimitiveLong":    KindLong,
	"PrimitiveFloat":   KindFloat,
	"PrimitiveDouble":  KindDouble,
}

// Load builds a Model from a Smithy JSON AST document.
func Load(r io.Reader) (*Model, error) {
	var doc astDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "cannot decode Smithy JSON AST")
	}
	if doc.Smithy == "" {
		return nil, errors.New("cannot decode Smithy JSON AST: missing smithy version")
	}

	m := NewModel()
	for name, kind := range preludeShapes {
		id := ShapeID("smithy.api#" + name)
		if _, ok := doc.Shapes[string(id)]; ok {
			continue
		}
		if err := m.AddShape(&Shape{ID: id, Kind: kind}); err != nil {
			return nil, err
		}
	}

	ids := make([]string, 0, len(doc.Shapes))
	for id := range doc.Shapes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var serviceOps map[ShapeID]bool
	for _, rawID := range ids {
		id := ShapeID(rawID)
		ast := doc.Shapes[rawID]
		switch ast.Type {
		case "service":
			if m.Service != "" {
				return nil, &CodegenError{Shape: id, Msg: "model declares more than one service"}
			}
			m.Service = id
			serviceOps = make(map[ShapeID]bool, len(ast.Operations))
			for _, ref := range ast.Operations {
				serviceOps[ShapeID(ref.Target)] = true
			}
		case "operation":
			op, err := loadOperation(id, ast)
			if err != nil {
				return nil, err
			}
			m.AddOperation(op)
		case "resource":
			log.WithField("shape", id).Debug("ignoring resource shape")
		default:
			s, err := loadShape(id, ast)
			if err != nil {
				return nil, err
			}
			if err := m.AddShape(s); err != nil {
				return nil, err
			}
		}
	}

	if serviceOps != nil {
		var ops []*Operation
		for _, op := range m.Operations {
			if serviceOps[op.ID] {
				ops = append(ops, op)
			}
		}
		m.Operations = ops
	}

	markDocumentMembers(m)
	return m, nil
}

func loadOperation(id ShapeID, ast *astShape) (*Operation, error) {
	op := &Operation{ID: id}
	if ast.Input != nil {
		op.Input = ShapeID(ast.Input.Target)
	}
	if ast.Output != nil {
		op.Output = ShapeID(ast.Output.Target)
	}
	for _, ref := range ast.Errors {
		op.Errors = append(op.Errors, ShapeID(ref.Target))
	}
	if raw, ok := ast.Traits[traitHTTP]; ok {
		var h HTTPTrait
		var trait struct {
			Method string `json:"method"`
			URI    string `json:"uri"`
			Code   int    `json:"code"`
		}
		if err := json.Unmarshal(raw, &trait); err != nil {
			return nil, errors.Wrapf(err, "cannot decode http trait of %s", id)
		}
		h.Method, h.URI, h.Code = trait.Method, trait.URI, trait.Code
		op.HTTP = &h
	}
	return op, nil
}

func loadShape(id ShapeID, ast *astShape) (*Shape, error) {
	s := &Shape{ID: id}
	switch ast.Type {
	case "enum":
		s.Kind = KindString
		s.EnumValues = []string{}
		names := sortedMemberNames(ast.Members)
		for _, name := range names {
			value := name
			if raw, ok := ast.Members[name].Traits[traitEnumValue]; ok {
				if err := json.Unmarshal(raw, &value); err != nil {
					return nil, errors.Wrapf(err, "cannot decode enum value of %s", id.WithMember(name))
				}
			}
			s.EnumValues = append(s.EnumValues, value)
		}
		return s, nil
	case "intEnum":
		s.Kind = KindInteger
		return s, nil
	}

	s.Kind = KindFromString(ast.Type)
	if s.Kind == KindInvalid {
		return nil, &CodegenError{Shape: id, Msg: "unsupported shape type " + ast.Type}
	}

	if raw, ok := ast.Traits[traitEnum]; ok {
		var values []struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(raw, &values); err != nil {
			return nil, errors.Wrapf(err, "cannot decode enum trait of %s", id)
		}
		s.EnumValues = []string{}
		for _, v := range values {
			s.EnumValues = append(s.EnumValues, v.Value)
		}
	}
	if raw, ok := ast.Traits[traitTimestampFmt]; ok {
		if err := json.Unmarshal(raw, &s.TimestampFormat); err != nil {
			return nil, errors.Wrapf(err, "cannot decode timestamp format of %s", id)
		}
	}
	if raw, ok := ast.Traits[traitError]; ok {
		if err := json.Unmarshal(raw, &s.Error); err != nil {
			return nil, errors.Wrapf(err, "cannot decode error trait of %s", id)
		}
	}

	add := func(name string, am *astMember) error {
		if am == nil {
			return &CodegenError{Shape: id, Msg: "missing " + name + " member of " + ast.Type}
		}
		mem, err := loadMember(id.WithMember(name), name, am)
		if err != nil {
			return err
		}
		s.Members = append(s.Members, mem)
		return nil
	}
	switch s.Kind {
	case KindList, KindSet:
		if err := add("member", ast.Member); err != nil {
			return nil, err
		}
	case KindMap:
		if err := add("key", ast.Key); err != nil {
			return nil, err
		}
		if err := add("value", ast.Value); err != nil {
			return nil, err
		}
	case KindStructure, KindUnion:
		for _, name := range sortedMemberNames(ast.Members) {
			if err := add(name, ast.Members[name]); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

func loadMember(id ShapeID, name string, am *astMember) (*Member, error) {
	mem := &Member{ID: id, Name: name, Target: ShapeID(am.Target)}
	if mem.Target == "" {
		return nil, &CodegenError{Shape: id, Msg: "member has no target"}
	}

	setLocation := func(loc Location, raw json.RawMessage, named bool) error {
		if mem.Location != LocationNone {
			return &CodegenError{Shape: id, Msg: "conflicting http binding traits " + mem.Location.String() + " and " + loc.String()}
		}
		mem.Location = loc
		if named {
			if err := json.Unmarshal(raw, &mem.LocationName); err != nil {
				return errors.Wrapf(err, "cannot decode %s binding of %s", loc, id)
			}
		}
		return nil
	}

	// Trait keys are visited in a fixed order so conflicts report the same
	// pair on every run.
	for _, key := range sortedTraitKeys(am.Traits) {
		raw := am.Traits[key]
		var err error
		switch key {
		case traitHTTPHeader:
			err = setLocation(LocationHeader, raw, true)
		case traitPrefixHeaders:
			err = setLocation(LocationPrefixHeaders, raw, true)
		case traitHTTPLabel:
			err = setLocation(LocationLabel, raw, false)
			mem.LocationName = name
		case traitHTTPQuery:
			err = setLocation(LocationQuery, raw, true)
		case traitHTTPPayload:
			err = setLocation(LocationPayload, raw, false)
		case traitTimestampFmt:
			err = json.Unmarshal(raw, &mem.TimestampFormat)
		case traitRequired:
			mem.Required = true
		}
		if err != nil {
			return nil, err
		}
	}
	return mem, nil
}

// markDocumentMembers binds every unbound member of operation inputs,
// outputs and errors to the document body.
func markDocumentMembers(m *Model) {
	mark := func(id ShapeID) {
		s, ok := m.Shape(id)
		if !ok || s.Kind != KindStructure {
			return
		}
		for _, mem := range s.Members {
			if mem.Location == LocationNone {
				mem.Location = LocationDocument
				mem.LocationName = mem.Name
			}
		}
	}
	for _, op := range m.Operations {
		mark(op.Input)
		mark(op.Output)
		for _, e := range op.Errors {
			mark(e)
		}
	}
}

func sortedMemberNames(members map[string]*astMember) []string {
	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedTraitKeys(traits map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(traits))
	for k := range traits {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
