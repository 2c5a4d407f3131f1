package restjson

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Unity-Technologies/restbind/gengo/httpbinding"
	"github.com/Unity-Technologies/restbind/shapedef"
)

// documentFunc is the template data of the document function templates.
type documentFunc struct {
	Name string
	Type string
	// Struct is the structure type allocated by a structure deserializer.
	Struct      string
	ElementType string
	Members     []string
	Element     string
	Payload     string
}

// valueSite is one value inside a document: the member it belongs to and
// the timestamp format overrides that apply, most specific first.
type valueSite struct {
	member  shapedef.ShapeID
	formats []shapedef.TimestampFormat
}

func (p *Protocol) timestampFormat(site valueSite, target *shapedef.Shape) (shapedef.TimestampFormat, error) {
	sources := append(append([]shapedef.TimestampFormat{}, site.formats...), target.TimestampFormat)
	return httpbinding.TimestampFormat(site.member, shapedef.LocationDocument, p.DocumentTimestampFormat(), sources...)
}

// encodeValue returns statements and the expression turning value, a
// target-kind Go value, into something encoding/json writes in the document
// format. Statements return (nil, err) on failure.
func (p *Protocol) encodeValue(w *httpbinding.Writer, site valueSite, target *shapedef.Shape, value string) (stmts, expr string, err error) {
	if httpbinding.IsDocumentSerializerRequired(target.Kind) {
		fn := httpbinding.DocumentSerializerName(p.Name(), target.ID)
		return "dv, err := " + fn + "(" + value + ")\nif err != nil {\nreturn nil, err\n}", "dv", nil
	}
	switch target.Kind {
	case shapedef.KindTimestamp:
		format, err := p.timestampFormat(site, target)
		if err != nil {
			return "", "", err
		}
		w.AddImport(httpbinding.ImportSmithyTime, "")
		switch format {
		case shapedef.FormatDateTime:
			return "", "smithytime.FormatDateTime(" + value + ")", nil
		case shapedef.FormatHTTPDate:
			return "", "smithytime.FormatHTTPDate(" + value + ")", nil
		default:
			return "", "smithytime.FormatEpochSeconds(" + value + ")", nil
		}
	case shapedef.KindString:
		if target.IsEnum() {
			return "", "string(" + value + ")", nil
		}
		return "", value, nil
	case shapedef.KindBoolean, shapedef.KindByte, shapedef.KindShort, shapedef.KindInteger,
		shapedef.KindLong, shapedef.KindFloat, shapedef.KindDouble, shapedef.KindBigInteger,
		shapedef.KindBigDecimal, shapedef.KindBlob:
		return "", value, nil
	}
	return "", "", &shapedef.CodegenError{Shape: site.member, Msg: "unexpected document shape type " + target.Kind.String()}
}

// decodeValue returns statements reading src, a json.RawMessage, into dst.
// pointer is set when dst is a pointer to a scalar value. Statements return
// err on failure.
func (p *Protocol) decodeValue(w *httpbinding.Writer, site valueSite, target *shapedef.Shape, dst, src string, pointer bool) (string, error) {
	if httpbinding.IsDocumentSerializerRequired(target.Kind) {
		fn := httpbinding.DocumentDeserializerName(p.Name(), target.ID)
		return "if err := " + fn + "(&" + dst + ", " + src + "); err != nil {\nreturn err\n}", nil
	}
	switch target.Kind {
	case shapedef.KindTimestamp:
		format, err := p.timestampFormat(site, target)
		if err != nil {
			return "", err
		}
		w.AddImport(httpbinding.ImportSmithyTime, "")
		assign := dst + " = t"
		if pointer {
			assign = dst + " = &t"
		}
		switch format {
		case shapedef.FormatDateTime, shapedef.FormatHTTPDate:
			parse := "ParseDateTime"
			if format == shapedef.FormatHTTPDate {
				parse = "ParseHTTPDate"
			}
			return "{\nvar s string\n" +
				"if err := json.Unmarshal(" + src + ", &s); err != nil {\nreturn err\n}\n" +
				"t, err := smithytime." + parse + "(s)\nif err != nil {\nreturn err\n}\n" +
				assign + "\n}", nil
		default:
			return "{\nvar f float64\n" +
				"if err := json.Unmarshal(" + src + ", &f); err != nil {\nreturn err\n}\n" +
				"t := smithytime.ParseEpochSeconds(f)\n" +
				assign + "\n}", nil
		}
	case shapedef.KindString, shapedef.KindBoolean, shapedef.KindByte, shapedef.KindShort,
		shapedef.KindInteger, shapedef.KindLong, shapedef.KindFloat, shapedef.KindDouble,
		shapedef.KindBigInteger, shapedef.KindBigDecimal, shapedef.KindBlob:
		return "if err := json.Unmarshal(" + src + ", &" + dst + "); err != nil {\nreturn err\n}", nil
	}
	return "", &shapedef.CodegenError{Shape: site.member, Msg: "unexpected document shape type " + target.Kind.String()}
}

// encodeMembers returns, per member, the statements setting doc[name] from
// the member of v.
func (p *Protocol) encodeMembers(ctx *httpbinding.GenerationContext, w *httpbinding.Writer, members []*shapedef.Member) ([]string, error) {
	var codes []string
	for _, m := range members {
		target, err := ctx.Model.Target(m)
		if err != nil {
			return nil, err
		}
		acc := ctx.Symbols.Accessor("v", m, target)
		site := valueSite{member: m.ID, formats: []shapedef.TimestampFormat{m.TimestampFormat}}
		stmts, expr, err := p.encodeValue(w, site, target, acc.Value())
		if err != nil {
			return nil, err
		}
		code := "doc[" + strconv.Quote(m.Name) + "] = " + expr
		if stmts != "" {
			code = stmts + "\n" + code
		}
		codes = append(codes, acc.Wrap(code))
	}
	return codes, nil
}

// decodeMembers returns, per member, the statements reading raw[name] into
// the member of base.
func (p *Protocol) decodeMembers(ctx *httpbinding.GenerationContext, w *httpbinding.Writer, base string, members []*shapedef.Member) ([]string, error) {
	var codes []string
	for _, m := range members {
		target, err := ctx.Model.Target(m)
		if err != nil {
			return nil, err
		}
		acc := ctx.Symbols.Accessor(base, m, target)
		site := valueSite{member: m.ID, formats: []shapedef.TimestampFormat{m.TimestampFormat}}
		code, err := p.decodeValue(w, site, target, acc.Operand, "mv", acc.Pointer)
		if err != nil {
			return nil, err
		}
		codes = append(codes, "if mv, ok := raw["+strconv.Quote(m.Name)+"]; ok && string(mv) != \"null\" {\n"+code+"\n}")
	}
	return codes, nil
}

func bindingMembers(table shapedef.BindingTable) []*shapedef.Member {
	members := make([]*shapedef.Member, 0, len(table))
	for _, b := range table {
		members = append(members, b.Member)
	}
	return members
}

func (p *Protocol) generateOpDocumentSerializer(ctx *httpbinding.GenerationContext, w *httpbinding.Writer, shape shapedef.ShapeID, bindings shapedef.BindingTable) error {
	f := documentFunc{
		Name: httpbinding.OpDocumentSerializerName(p.Name(), shape),
		Type: ctx.Symbols.TypeRef(w, shape),
	}
	document, payload := bodyBindings(bindings)
	if payload != nil {
		code, err := p.payloadSerializer(ctx, w, payload)
		if err != nil {
			return err
		}
		f.Payload = code
	} else {
		codes, err := p.encodeMembers(ctx, w, bindingMembers(document))
		if err != nil {
			return err
		}
		f.Members = codes
		w.AddImports(httpbinding.ImportJSON)
	}
	w.AddImports(httpbinding.ImportFmt)
	return w.WriteTemplate("opDocumentSerializerTemplate", opDocumentSerializerTemplate, f)
}

// payloadSerializer returns statements returning the body bytes of the
// payload member of v.
func (p *Protocol) payloadSerializer(ctx *httpbinding.GenerationContext, w *httpbinding.Writer, b *shapedef.Binding) (string, error) {
	acc := ctx.Symbols.Accessor("v", b.Member, b.Target)
	var code string
	switch {
	case b.Target.Kind == shapedef.KindBlob:
		code = "return " + acc.Operand + ", nil"
	case b.Target.Kind == shapedef.KindString && b.Target.IsEnum():
		code = "return []byte(string(" + acc.Operand + ")), nil"
	case b.Target.Kind == shapedef.KindString:
		code = "return []byte(" + acc.Value() + "), nil"
	default:
		site := valueSite{member: b.Member.ID, formats: []shapedef.TimestampFormat{b.Member.TimestampFormat}}
		stmts, expr, err := p.encodeValue(w, site, b.Target, acc.Value())
		if err != nil {
			return "", err
		}
		w.AddImports(httpbinding.ImportJSON)
		code = "return json.Marshal(" + expr + ")"
		if stmts != "" {
			code = stmts + "\n" + code
		}
	}
	if acc.Condition == "" {
		return code, nil
	}
	return "if !(" + acc.Condition + ") {\nreturn nil, nil\n}\n" + code, nil
}

func (p *Protocol) generateOpDocumentDeserializer(ctx *httpbinding.GenerationContext, w *httpbinding.Writer, shape shapedef.ShapeID, bindings shapedef.BindingTable) error {
	f := documentFunc{
		Name: httpbinding.OpDocumentDeserializerName(p.Name(), shape),
		Type: ctx.Symbols.TypeRef(w, shape),
	}
	document, payload := bodyBindings(bindings)
	if payload != nil {
		code, err := p.payloadDeserializer(ctx, w, payload)
		if err != nil {
			return err
		}
		f.Payload = code
	} else {
		codes, err := p.decodeMembers(ctx, w, "v", bindingMembers(document))
		if err != nil {
			return err
		}
		f.Members = codes
		w.AddImports(httpbinding.ImportJSON)
	}
	w.AddImports(httpbinding.ImportFmt)
	return w.WriteTemplate("opDocumentDeserializerTemplate", opDocumentDeserializerTemplate, f)
}

// payloadDeserializer returns statements storing body into the payload
// member of v.
func (p *Protocol) payloadDeserializer(ctx *httpbinding.GenerationContext, w *httpbinding.Writer, b *shapedef.Binding) (string, error) {
	acc := ctx.Symbols.Accessor("v", b.Member, b.Target)
	switch {
	case b.Target.Kind == shapedef.KindBlob:
		return acc.Operand + " = body", nil
	case b.Target.Kind == shapedef.KindString && b.Target.IsEnum():
		return acc.Operand + " = " + ctx.Symbols.TypeRef(w, b.Target.ID) + "(body)", nil
	case b.Target.Kind == shapedef.KindString && acc.Pointer:
		return "payload := string(body)\n" + acc.Operand + " = &payload", nil
	case b.Target.Kind == shapedef.KindString:
		return acc.Operand + " = string(body)", nil
	}
	site := valueSite{member: b.Member.ID, formats: []shapedef.TimestampFormat{b.Member.TimestampFormat}}
	w.AddImports(httpbinding.ImportJSON)
	return p.decodeValue(w, site, b.Target, acc.Operand, "body", acc.Pointer)
}

// GenerateDocumentShapeSerializers writes one document serializer per shape,
// in id order.
func (p *Protocol) GenerateDocumentShapeSerializers(ctx *httpbinding.GenerationContext, w *httpbinding.Writer, shapes httpbinding.ShapeSet) error {
	for _, id := range shapes.Sorted() {
		shape, err := ctx.Model.Expect(id)
		if err != nil {
			return err
		}
		log.WithField("shape", id).Debug("Generating document serializer")
		if err := p.generateShapeSerializer(ctx, w, shape); err != nil {
			return errors.Wrapf(err, "cannot generate document serializer for %s", id)
		}
	}
	return nil
}

func (p *Protocol) generateShapeSerializer(ctx *httpbinding.GenerationContext, w *httpbinding.Writer, shape *shapedef.Shape) error {
	goType, err := ctx.Symbols.ElementType(w, ctx.Model, shape)
	if err != nil {
		return err
	}
	f := documentFunc{
		Name: httpbinding.DocumentSerializerName(p.Name(), shape.ID),
		Type: goType,
	}
	switch shape.Kind {
	case shapedef.KindStructure, shapedef.KindUnion:
		codes, err := p.encodeMembers(ctx, w, shape.Members)
		if err != nil {
			return err
		}
		f.Members = codes
		return w.WriteTemplate("structureSerializerTemplate", structureSerializerTemplate, f)
	case shapedef.KindList, shapedef.KindSet:
		m := shape.Member("member")
		code, err := p.encodeElement(ctx, w, m, "v[i]", "array = append(array, %s)")
		if err != nil {
			return err
		}
		f.Element = code
		return w.WriteTemplate("listSerializerTemplate", listSerializerTemplate, f)
	case shapedef.KindMap:
		m := shape.Member("value")
		code, err := p.encodeElement(ctx, w, m, "value", "obj[key] = %s")
		if err != nil {
			return err
		}
		f.Element = code
		return w.WriteTemplate("mapSerializerTemplate", mapSerializerTemplate, f)
	case shapedef.KindDocument:
		return w.WriteTemplate("documentSerializerTemplate", documentSerializerTemplate, f)
	}
	return &shapedef.CodegenError{Shape: shape.ID, Msg: "unexpected document shape type " + shape.Kind.String()}
}

// encodeElement returns the statements encoding one collection element or
// map value; store is a format string taking the encoded expression.
func (p *Protocol) encodeElement(ctx *httpbinding.GenerationContext, w *httpbinding.Writer, m *shapedef.Member, value, store string) (string, error) {
	if m == nil {
		return "", errors.New("collection has no element member")
	}
	target, err := ctx.Model.Target(m)
	if err != nil {
		return "", err
	}
	site := valueSite{member: m.ID, formats: []shapedef.TimestampFormat{m.TimestampFormat}}
	stmts, expr, err := p.encodeValue(w, site, target, value)
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf(store, expr)
	if stmts != "" {
		code = stmts + "\n" + code
	}
	return code, nil
}

// GenerateDocumentShapeDeserializers writes one document deserializer per
// shape, in id order.
func (p *Protocol) GenerateDocumentShapeDeserializers(ctx *httpbinding.GenerationContext, w *httpbinding.Writer, shapes httpbinding.ShapeSet) error {
	for _, id := range shapes.Sorted() {
		shape, err := ctx.Model.Expect(id)
		if err != nil {
			return err
		}
		log.WithField("shape", id).Debug("Generating document deserializer")
		if err := p.generateShapeDeserializer(ctx, w, shape); err != nil {
			return errors.Wrapf(err, "cannot generate document deserializer for %s", id)
		}
	}
	return nil
}

func (p *Protocol) generateShapeDeserializer(ctx *httpbinding.GenerationContext, w *httpbinding.Writer, shape *shapedef.Shape) error {
	goType, err := ctx.Symbols.ElementType(w, ctx.Model, shape)
	if err != nil {
		return err
	}
	f := documentFunc{
		Name: httpbinding.DocumentDeserializerName(p.Name(), shape.ID),
		Type: goType,
	}
	w.AddImports(httpbinding.ImportFmt, httpbinding.ImportJSON)
	switch shape.Kind {
	case shapedef.KindStructure, shapedef.KindUnion:
		f.Struct = ctx.Symbols.TypeRef(w, shape.ID)
		codes, err := p.decodeMembers(ctx, w, "sv", shape.Members)
		if err != nil {
			return err
		}
		f.Members = codes
		return w.WriteTemplate("structureDeserializerTemplate", structureDeserializerTemplate, f)
	case shapedef.KindList, shapedef.KindSet:
		if err := p.decodeElement(ctx, w, shape.Member("member"), "col", &f); err != nil {
			return err
		}
		return w.WriteTemplate("listDeserializerTemplate", listDeserializerTemplate, f)
	case shapedef.KindMap:
		if err := p.decodeElement(ctx, w, shape.Member("value"), "parsed", &f); err != nil {
			return err
		}
		return w.WriteTemplate("mapDeserializerTemplate", mapDeserializerTemplate, f)
	case shapedef.KindDocument:
		return w.WriteTemplate("documentDeserializerTemplate", documentDeserializerTemplate, f)
	}
	return &shapedef.CodegenError{Shape: shape.ID, Msg: "unexpected document shape type " + shape.Kind.String()}
}

// decodeElement fills in the element type and the statements decoding item
// into dst for a list or map deserializer.
func (p *Protocol) decodeElement(ctx *httpbinding.GenerationContext, w *httpbinding.Writer, m *shapedef.Member, dst string, f *documentFunc) error {
	if m == nil {
		return errors.New("collection has no element member")
	}
	target, err := ctx.Model.Target(m)
	if err != nil {
		return err
	}
	elemType, err := ctx.Symbols.ElementType(w, ctx.Model, target)
	if err != nil {
		return err
	}
	site := valueSite{member: m.ID, formats: []shapedef.TimestampFormat{m.TimestampFormat}}
	code, err := p.decodeValue(w, site, target, dst, "item", false)
	if err != nil {
		return err
	}
	f.ElementType = elemType
	f.Element = code
	return nil
}
