package httpbinding

import (
	"fmt"

	"github.com/Unity-Technologies/restbind/shapedef"
)

// scalarSite is where one scalar value travels: the member it belongs to,
// its binding location and the timestamp format overrides that apply to it,
// most specific first.
type scalarSite struct {
	member   shapedef.ShapeID
	location shapedef.Location
	formats  []shapedef.TimestampFormat
}

func (s scalarSite) timestampFormat(ctx *GenerationContext, target *shapedef.Shape) (shapedef.TimestampFormat, error) {
	sources := make([]shapedef.TimestampFormat, 0, len(s.formats)+1)
	sources = append(sources, s.formats...)
	sources = append(sources, target.TimestampFormat)
	return TimestampFormat(s.member, s.location, ctx.Protocol.DocumentTimestampFormat(), sources...)
}

// TimestampFormat resolves the wire format of a timestamp at loc and fails
// when the resolved format is not one generated code can handle.
func TimestampFormat(member shapedef.ShapeID, loc shapedef.Location, def shapedef.TimestampFormat, sources ...shapedef.TimestampFormat) (shapedef.TimestampFormat, error) {
	f := shapedef.DetermineTimestampFormat(loc, def, sources...)
	switch f {
	case shapedef.FormatDateTime, shapedef.FormatHTTPDate, shapedef.FormatEpochSeconds:
		return f, nil
	}
	return "", &shapedef.CodegenError{Shape: member, Msg: fmt.Sprintf("unsupported timestamp format %q", string(f))}
}

// encodeSetter returns the httpbinding value method call that writes value,
// an expression holding a target-kind value, e.g. `Integer(v.Count)`.
func encodeSetter(ctx *GenerationContext, w *Writer, site scalarSite, target *shapedef.Shape, value string) (string, error) {
	switch target.Kind {
	case shapedef.KindBoolean:
		return "Boolean(" + value + ")", nil
	case shapedef.KindString:
		if target.IsEnum() {
			return "String(string(" + value + "))", nil
		}
		return "String(" + value + ")", nil
	case shapedef.KindByte:
		return "Byte(" + value + ")", nil
	case shapedef.KindShort:
		return "Short(" + value + ")", nil
	case shapedef.KindInteger:
		return "Integer(" + value + ")", nil
	case shapedef.KindLong:
		return "Long(" + value + ")", nil
	case shapedef.KindFloat:
		return "Float(" + value + ")", nil
	case shapedef.KindDouble:
		return "Double(" + value + ")", nil
	case shapedef.KindBigInteger:
		return "BigInteger(" + value + ")", nil
	case shapedef.KindBigDecimal:
		return "BigDecimal(" + value + ")", nil
	case shapedef.KindBlob:
		w.AddImports(ImportBase64)
		return "String(base64.StdEncoding.EncodeToString(" + value + "))", nil
	case shapedef.KindTimestamp:
		format, err := site.timestampFormat(ctx, target)
		if err != nil {
			return "", err
		}
		w.AddImport(ImportSmithyTime, "")
		switch format {
		case shapedef.FormatDateTime:
			return "String(smithytime.FormatDateTime(" + value + "))", nil
		case shapedef.FormatHTTPDate:
			return "String(smithytime.FormatHTTPDate(" + value + "))", nil
		default:
			return "Double(smithytime.FormatEpochSeconds(" + value + "))", nil
		}
	case shapedef.KindList, shapedef.KindSet, shapedef.KindMap, shapedef.KindStructure,
		shapedef.KindUnion, shapedef.KindDocument, shapedef.KindInvalid:
	}
	return "", &shapedef.CodegenError{Shape: site.member, Msg: "unexpected shape type " + target.Kind.String()}
}

// decodeValue returns statements parsing the wire string operand and the
// expression holding the parsed target-kind value. Statements return the
// parse error from the enclosing function.
func decodeValue(ctx *GenerationContext, w *Writer, site scalarSite, target *shapedef.Shape, operand string) (stmts, expr string, err error) {
	parse := func(fn string) (string, string, error) {
		w.AddImports(ImportWirevalue)
		return fmt.Sprintf("vv, err := wirevalue.%s(%s)\nif err != nil {\nreturn err\n}", fn, operand), "vv", nil
	}

	switch target.Kind {
	case shapedef.KindString:
		if target.IsEnum() {
			return "", ctx.Symbols.TypeRef(w, target.ID) + "(" + operand + ")", nil
		}
		return "", operand, nil
	case shapedef.KindBoolean:
		return parse("ParseBoolean")
	case shapedef.KindByte:
		return parse("ParseByte")
	case shapedef.KindShort:
		return parse("ParseShort")
	case shapedef.KindInteger:
		return parse("ParseInteger")
	case shapedef.KindLong:
		return parse("ParseLong")
	case shapedef.KindFloat:
		return parse("ParseFloat")
	case shapedef.KindDouble:
		return parse("ParseDouble")
	case shapedef.KindBigInteger:
		return parse("ParseBigInteger")
	case shapedef.KindBigDecimal:
		return parse("ParseBigDecimal")
	case shapedef.KindBlob:
		return parse("ParseBlob")
	case shapedef.KindTimestamp:
		format, err := site.timestampFormat(ctx, target)
		if err != nil {
			return "", "", err
		}
		switch format {
		case shapedef.FormatDateTime:
			return parse("ParseDateTime")
		case shapedef.FormatHTTPDate:
			return parse("ParseHTTPDate")
		default:
			return parse("ParseEpochSeconds")
		}
	case shapedef.KindList, shapedef.KindSet, shapedef.KindMap, shapedef.KindStructure,
		shapedef.KindUnion, shapedef.KindDocument, shapedef.KindInvalid:
	}
	return "", "", &shapedef.CodegenError{Shape: site.member, Msg: "unexpected shape type " + target.Kind.String()}
}
