package httpbinding

import (
	gogen "github.com/gogo/protobuf/protoc-gen-gogo/generator"

	"github.com/Unity-Technologies/restbind/shapedef"
)

// SymbolProvider names the Go symbols generated code refers to. Shape types
// live in a separate types package; generated functions live in the output
// package.
//
// Member field types follow one policy: optional scalars are pointers,
// required scalars are values, enums are string-kinded value types, and
// blobs, collections, maps, documents, big numbers, structures and unions are
// nilable regardless of Required. Collection elements and map values are
// never pointers, except structures, unions and big numbers.
type SymbolProvider struct {
	TypesImportPath string
	TypesPackage    string
}

// ShapeName returns the exported Go name of shape id.
func (p *SymbolProvider) ShapeName(id shapedef.ShapeID) string {
	return gogen.CamelCase(id.Name())
}

// MemberName returns the Go field name of m.
func (p *SymbolProvider) MemberName(m *shapedef.Member) string {
	return gogen.CamelCase(m.Name)
}

// TypeRef returns the qualified name of a shape's type in the types package
// and records the import on w.
func (p *SymbolProvider) TypeRef(w *Writer, id shapedef.ShapeID) string {
	w.AddImport(p.TypesImportPath, p.TypesPackage)
	return p.TypesPackage + "." + p.ShapeName(id)
}

// ElementType returns the Go type of target when it is held as a collection
// element or map value.
func (p *SymbolProvider) ElementType(w *Writer, model *shapedef.Model, target *shapedef.Shape) (string, error) {
	switch target.Kind {
	case shapedef.KindBoolean:
		return "bool", nil
	case shapedef.KindString:
		if target.IsEnum() {
			return p.TypeRef(w, target.ID), nil
		}
		return "string", nil
	case shapedef.KindByte:
		return "int8", nil
	case shapedef.KindShort:
		return "int16", nil
	case shapedef.KindInteger:
		return "int32", nil
	case shapedef.KindLong:
		return "int64", nil
	case shapedef.KindFloat:
		return "float32", nil
	case shapedef.KindDouble:
		return "float64", nil
	case shapedef.KindBigInteger:
		w.AddImports(ImportBig)
		return "*big.Int", nil
	case shapedef.KindBigDecimal:
		w.AddImports(ImportBig)
		return "*big.Float", nil
	case shapedef.KindBlob:
		return "[]byte", nil
	case shapedef.KindTimestamp:
		w.AddImports(ImportTime)
		return "time.Time", nil
	case shapedef.KindDocument:
		return "interface{}", nil
	case shapedef.KindStructure, shapedef.KindUnion:
		return "*" + p.TypeRef(w, target.ID), nil
	case shapedef.KindList, shapedef.KindSet:
		elem, err := memberTarget(model, target, "member")
		if err != nil {
			return "", err
		}
		t, err := p.ElementType(w, model, elem)
		if err != nil {
			return "", err
		}
		return "[]" + t, nil
	case shapedef.KindMap:
		value, err := memberTarget(model, target, "value")
		if err != nil {
			return "", err
		}
		t, err := p.ElementType(w, model, value)
		if err != nil {
			return "", err
		}
		return "map[string]" + t, nil
	case shapedef.KindInvalid:
	}
	return "", &shapedef.CodegenError{Shape: target.ID, Msg: "unsupported shape type " + target.Kind.String()}
}

// memberTarget resolves the target of the named member of s.
func memberTarget(model *shapedef.Model, s *shapedef.Shape, name string) (*shapedef.Shape, error) {
	m := s.Member(name)
	if m == nil {
		return nil, &shapedef.CodegenError{Shape: s.ID, Msg: "missing " + name + " member of " + s.Kind.String()}
	}
	return model.Target(m)
}

// Function and type names of generated code. proto prefixes every name so
// several protocols can share one package.

func SerializeMiddlewareName(proto string, op shapedef.ShapeID) string {
	return proto + "_serializeOp" + gogen.CamelCase(op.Name())
}

func DeserializeMiddlewareName(proto string, op shapedef.ShapeID) string {
	return proto + "_deserializeOp" + gogen.CamelCase(op.Name())
}

func SerializeHTTPBindingsName(proto string, shape shapedef.ShapeID) string {
	return proto + "_serializeOpHttpBindings" + gogen.CamelCase(shape.Name())
}

func DeserializeHTTPBindingsName(proto string, shape shapedef.ShapeID) string {
	return proto + "_deserializeOpHttpBindings" + gogen.CamelCase(shape.Name())
}

func ErrorDispatcherName(proto string, op shapedef.ShapeID) string {
	return proto + "_deserializeOpError" + gogen.CamelCase(op.Name())
}

func ErrorDeserializerName(proto string, shape shapedef.ShapeID) string {
	return proto + "_deserializeError" + gogen.CamelCase(shape.Name())
}

func OpDocumentSerializerName(proto string, shape shapedef.ShapeID) string {
	return proto + "_serializeOpDocument" + gogen.CamelCase(shape.Name())
}

func OpDocumentDeserializerName(proto string, shape shapedef.ShapeID) string {
	return proto + "_deserializeOpDocument" + gogen.CamelCase(shape.Name())
}

func DocumentSerializerName(proto string, shape shapedef.ShapeID) string {
	return proto + "_serializeDocument" + gogen.CamelCase(shape.Name())
}

func DocumentDeserializerName(proto string, shape shapedef.ShapeID) string {
	return proto + "_deserializeDocument" + gogen.CamelCase(shape.Name())
}
