package httpbinding

import (
	"github.com/Unity-Technologies/restbind/shapedef"
)

// OperandAccessor describes how generated code reaches one member of a
// structure value.
type OperandAccessor struct {
	// Operand is the field expression, e.g. "v.CityId".
	Operand string
	// Condition guards emission of the member; "" means always emit.
	Condition string
	// Pointer is set when the field is a pointer to a scalar value, so the
	// value itself is *Operand.
	Pointer bool
}

// Value returns the expression of the member's value.
func (a OperandAccessor) Value() string {
	if a.Pointer {
		return "*" + a.Operand
	}
	return a.Operand
}

// Wrap surrounds code with the accessor's condition, if any.
func (a OperandAccessor) Wrap(code string) string {
	if a.Condition == "" {
		return code
	}
	return "if " + a.Condition + " {\n" + code + "\n}"
}

// Accessor returns the accessor of member m of base. Enums are emitted when
// non-empty, nilable fields when non-nil, and everything else always, so
// required scalars are written even at their zero value.
func (p *SymbolProvider) Accessor(base string, m *shapedef.Member, target *shapedef.Shape) OperandAccessor {
	a := OperandAccessor{Operand: base + "." + p.MemberName(m)}
	switch {
	case target.IsEnum():
		a.Condition = "len(" + a.Operand + ") > 0"
	case IsNilable(m, target):
		a.Condition = a.Operand + " != nil"
		a.Pointer = isPointableScalar(target)
	}
	return a
}

// IsNilable reports whether the field for member m can be nil.
func IsNilable(m *shapedef.Member, target *shapedef.Shape) bool {
	switch target.Kind {
	case shapedef.KindBlob, shapedef.KindList, shapedef.KindSet, shapedef.KindMap,
		shapedef.KindDocument, shapedef.KindBigInteger, shapedef.KindBigDecimal,
		shapedef.KindStructure, shapedef.KindUnion:
		return true
	case shapedef.KindString:
		if target.IsEnum() {
			return false
		}
		return !m.Required
	case shapedef.KindBoolean, shapedef.KindByte, shapedef.KindShort,
		shapedef.KindInteger, shapedef.KindLong, shapedef.KindFloat,
		shapedef.KindDouble, shapedef.KindTimestamp:
		return !m.Required
	case shapedef.KindInvalid:
	}
	return false
}

// isPointableScalar reports whether a nilable field of target's kind is a
// pointer to a value, rather than a reference type.
func isPointableScalar(target *shapedef.Shape) bool {
	switch target.Kind {
	case shapedef.KindString:
		return !target.IsEnum()
	case shapedef.KindBoolean, shapedef.KindByte, shapedef.KindShort,
		shapedef.KindInteger, shapedef.KindLong, shapedef.KindFloat,
		shapedef.KindDouble, shapedef.KindTimestamp:
		return true
	}
	return false
}

// assignValue returns the right-hand side storing expr, a value of target's
// kind, into member m.
func assignValue(m *shapedef.Member, target *shapedef.Shape, expr string) string {
	if IsNilable(m, target) && isPointableScalar(target) {
		return "&" + expr
	}
	return expr
}
