package httpbinding

import (
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Unity-Technologies/restbind/shapedef"
)

// bindingFunc is the template data of one encode or decode function.
type bindingFunc struct {
	Name    string
	Type    string
	Members []string
}

// GenerateRequestSerializers writes, for every HTTP-bound operation in id
// order, the serialize middleware, the REST encode function of the input and
// the protocol's document serializer. It returns the document shapes the
// inputs refer to directly; pass them to GenerateSharedSerializerComponents
// once every operation is done.
func GenerateRequestSerializers(ctx *GenerationContext, w *Writer) (ShapeSet, error) {
	var seeds ShapeSet
	for _, op := range HTTPBindingOperations(ctx) {
		bindings, err := ctx.Model.RequestBindings(op)
		if err != nil {
			return ShapeSet{}, errors.Wrapf(err, "cannot generate serializer for %s", op.ID)
		}
		log.WithField("operation", op.ID).Debug("Generating request serializer")

		if err := generateSerializeMiddleware(ctx, w, op, bindings); err != nil {
			return ShapeSet{}, errors.Wrapf(err, "cannot generate serialize middleware for %s", op.ID)
		}
		if err := generateEncodeFunc(ctx, w, op.Input, bindings); err != nil {
			return ShapeSet{}, errors.Wrapf(err, "cannot generate http bindings serializer for %s", op.ID)
		}
		if err := ctx.Protocol.GenerateOperationDocumentSerializer(ctx, w, op, bindings); err != nil {
			return ShapeSet{}, errors.Wrapf(err, "cannot generate document serializer for %s", op.ID)
		}
		addDocumentSeeds(bindings, &seeds)
	}
	return seeds, nil
}

// GenerateSharedSerializerComponents closes seeds over structural
// containment and has the protocol write one document serializer per shape.
func GenerateSharedSerializerComponents(ctx *GenerationContext, w *Writer, seeds ShapeSet) error {
	shapes, err := ResolveDocumentShapes(ctx.Model, seeds)
	if err != nil {
		return err
	}
	return ctx.Protocol.GenerateDocumentShapeSerializers(ctx, w, shapes)
}

// generateEncodeFunc writes the REST encode function of shape. Nothing is
// written when no member is REST-bound.
func generateEncodeFunc(ctx *GenerationContext, w *Writer, shape shapedef.ShapeID, bindings shapedef.BindingTable) error {
	rest := bindings.Rest()
	if len(rest) == 0 {
		return nil
	}
	f := bindingFunc{
		Name: SerializeHTTPBindingsName(ctx.Protocol.Name(), shape),
		Type: ctx.Symbols.TypeRef(w, shape),
	}
	for _, b := range rest {
		code, err := encodeMember(ctx, w, b)
		if err != nil {
			return err
		}
		f.Members = append(f.Members, code)
	}
	w.AddImports(ImportFmt)
	w.AddImport(ImportHTTPBinding, "")
	return w.WriteTemplate("EncodeFuncTemplate", EncodeFuncTemplate, f)
}

// encodeMember returns the statements writing one REST-bound member of v.
func encodeMember(ctx *GenerationContext, w *Writer, b *shapedef.Binding) (string, error) {
	placement, err := Classify(ctx.Model, b)
	if err != nil {
		return "", err
	}
	acc := ctx.Symbols.Accessor("v", b.Member, b.Target)
	site := scalarSite{
		member:   b.Member.ID,
		location: b.Location,
		formats:  []shapedef.TimestampFormat{b.Member.TimestampFormat},
	}
	name := strconv.Quote(b.LocationName)

	switch placement {
	case PlacementHeader, PlacementQuery:
		setter, err := encodeSetter(ctx, w, site, b.Target, acc.Value())
		if err != nil {
			return "", err
		}
		method := "SetHeader"
		if placement == PlacementQuery {
			method = "SetQuery"
		}
		return acc.Wrap("encoder." + method + "(" + name + ")." + setter), nil

	case PlacementHeaderList, PlacementQueryList:
		elemMember := b.Target.Member("member")
		elem, err := memberTarget(ctx.Model, b.Target, "member")
		if err != nil {
			return "", err
		}
		site.formats = append(site.formats, elemMember.TimestampFormat)
		setter, err := encodeSetter(ctx, w, site, elem, acc.Operand+"[i]")
		if err != nil {
			return "", err
		}
		method := "AddHeader"
		if placement == PlacementQueryList {
			method = "AddQuery"
		}
		return acc.Wrap("for i := range " + acc.Operand + " {\n" +
			"encoder." + method + "(" + name + ")." + setter + "\n}"), nil

	case PlacementPrefixHeaders, PlacementPrefixHeadersList:
		valueMember := b.Target.Member("value")
		value, err := memberTarget(ctx.Model, b.Target, "value")
		if err != nil {
			return "", err
		}
		site.formats = append(site.formats, valueMember.TimestampFormat)
		var loop string
		if placement == PlacementPrefixHeaders {
			setter, err := encodeSetter(ctx, w, site, value, "mapVal")
			if err != nil {
				return "", err
			}
			loop = "hv.SetHeader(mapKey)." + setter
		} else {
			elemMember := value.Member("member")
			elem, err := memberTarget(ctx.Model, value, "member")
			if err != nil {
				return "", err
			}
			site.formats = append(site.formats, elemMember.TimestampFormat)
			setter, err := encodeSetter(ctx, w, site, elem, "mapVal[i]")
			if err != nil {
				return "", err
			}
			loop = "for i := range mapVal {\nhv.AddHeader(mapKey)." + setter + "\n}"
		}
		return acc.Wrap("hv := encoder.Headers(" + name + ")\n" +
			"for mapKey, mapVal := range " + acc.Operand + " {\n" + loop + "\n}"), nil

	case PlacementLabel:
		setter, err := encodeSetter(ctx, w, site, b.Target, acc.Value())
		if err != nil {
			return "", err
		}
		code := "if err := encoder.SetURI(" + name + ")." + setter + "; err != nil {\nreturn err\n}"
		if guard := labelGuard(acc, b.Target); guard != "" {
			w.AddImports(ImportFmt)
			code = "if " + guard + " {\n" +
				"return fmt.Errorf(" + strconv.Quote("input member "+b.Member.Name+" must not be empty") + ")\n}\n" +
				code
		}
		return code, nil
	}
	return "", &shapedef.CodegenError{Shape: b.Member.ID, Msg: "unexpected http binding placement " + placement.String()}
}

// labelGuard returns the condition under which a label member has no value
// to substitute, or "" when it always has one.
func labelGuard(acc OperandAccessor, target *shapedef.Shape) string {
	switch {
	case target.IsEnum():
		return "len(" + acc.Operand + ") == 0"
	case acc.Pointer && target.Kind == shapedef.KindString:
		return acc.Operand + " == nil || len(*" + acc.Operand + ") == 0"
	case acc.Condition != "":
		return acc.Operand + " == nil"
	case target.Kind == shapedef.KindString:
		return "len(" + acc.Operand + ") == 0"
	}
	return ""
}
