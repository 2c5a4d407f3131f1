package httpbinding

import (
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Unity-Technologies/restbind/shapedef"
)

// GenerateResponseDeserializers writes, for every HTTP-bound operation in id
// order, the deserialize middleware, the protocol's error dispatcher, the
// REST decode function of the output and the protocol's document
// deserializer. It returns the document shapes the outputs and errors refer
// to directly, and the distinct error shapes of all operations.
func GenerateResponseDeserializers(ctx *GenerationContext, w *Writer) (seeds, errs ShapeSet, err error) {
	for _, op := range HTTPBindingOperations(ctx) {
		bindings, err := ctx.Model.ResponseBindings(op)
		if err != nil {
			return ShapeSet{}, ShapeSet{}, errors.Wrapf(err, "cannot generate deserializer for %s", op.ID)
		}
		log.WithField("operation", op.ID).Debug("Generating response deserializer")

		if err := generateDeserializeMiddleware(ctx, w, op, bindings); err != nil {
			return ShapeSet{}, ShapeSet{}, errors.Wrapf(err, "cannot generate deserialize middleware for %s", op.ID)
		}
		if err := ctx.Protocol.GenerateErrorDispatcher(ctx, w, op); err != nil {
			return ShapeSet{}, ShapeSet{}, errors.Wrapf(err, "cannot generate error dispatcher for %s", op.ID)
		}
		if err := generateDecodeFunc(ctx, w, op.Output, bindings); err != nil {
			return ShapeSet{}, ShapeSet{}, errors.Wrapf(err, "cannot generate http bindings deserializer for %s", op.ID)
		}
		if err := ctx.Protocol.GenerateOperationDocumentDeserializer(ctx, w, op, bindings); err != nil {
			return ShapeSet{}, ShapeSet{}, errors.Wrapf(err, "cannot generate document deserializer for %s", op.ID)
		}
		addDocumentSeeds(bindings, &seeds)

		if err := addErrorShapes(ctx.Model, op, &errs, &seeds); err != nil {
			return ShapeSet{}, ShapeSet{}, err
		}
	}
	return seeds, errs, nil
}

// GenerateSharedDeserializerComponents closes seeds over structural
// containment and has the protocol write one document deserializer per
// shape.
func GenerateSharedDeserializerComponents(ctx *GenerationContext, w *Writer, seeds ShapeSet) error {
	shapes, err := ResolveDocumentShapes(ctx.Model, seeds)
	if err != nil {
		return err
	}
	return ctx.Protocol.GenerateDocumentShapeDeserializers(ctx, w, shapes)
}

// generateDecodeFunc writes the REST decode function of shape. Nothing is
// written when no member is REST-bound.
func generateDecodeFunc(ctx *GenerationContext, w *Writer, shape shapedef.ShapeID, bindings shapedef.BindingTable) error {
	rest := bindings.Rest()
	if len(rest) == 0 {
		return nil
	}
	f := bindingFunc{
		Name: DeserializeHTTPBindingsName(ctx.Protocol.Name(), shape),
		Type: ctx.Symbols.TypeRef(w, shape),
	}
	for _, b := range rest {
		code, err := decodeMember(ctx, w, b)
		if err != nil {
			return err
		}
		f.Members = append(f.Members, code)
	}
	w.AddImports(ImportFmt)
	w.AddImport(ImportSmithyHTTP, "")
	return w.WriteTemplate("DecodeFuncTemplate", DecodeFuncTemplate, f)
}

// decodeMember returns the statements reading one REST-bound member of v
// from response.
func decodeMember(ctx *GenerationContext, w *Writer, b *shapedef.Binding) (string, error) {
	placement, err := ClassifyResponse(ctx.Model, b)
	if err != nil {
		return "", err
	}
	field := "v." + ctx.Symbols.MemberName(b.Member)
	site := scalarSite{
		member:   b.Member.ID,
		location: b.Location,
		formats:  []shapedef.TimestampFormat{b.Member.TimestampFormat},
	}
	name := strconv.Quote(b.LocationName)

	switch placement {
	case PlacementHeader:
		stmts, expr, err := decodeValue(ctx, w, site, b.Target, "val")
		if err != nil {
			return "", err
		}
		return "if val := response.Header.Get(" + name + "); val != \"\" {\n" +
			stmts + "\n" +
			field + " = " + assignValue(b.Member, b.Target, expr) + "\n}", nil

	case PlacementHeaderList:
		elemMember := b.Target.Member("member")
		elem, err := memberTarget(ctx.Model, b.Target, "member")
		if err != nil {
			return "", err
		}
		site.formats = append(site.formats, elemMember.TimestampFormat)
		list, err := decodeList(ctx, w, site, elem)
		if err != nil {
			return "", err
		}
		return "if vals := response.Header.Values(" + name + "); len(vals) > 0 {\n" +
			list + "\n" +
			field + " = list\n}", nil

	case PlacementPrefixHeaders, PlacementPrefixHeadersList:
		valueMember := b.Target.Member("value")
		value, err := memberTarget(ctx.Model, b.Target, "value")
		if err != nil {
			return "", err
		}
		site.formats = append(site.formats, valueMember.TimestampFormat)
		mapType, err := ctx.Symbols.ElementType(w, ctx.Model, b.Target)
		if err != nil {
			return "", err
		}

		var code string
		// Only the map shape's declared member names are looked up.
		for _, declared := range b.Target.Members {
			header := strconv.Quote(b.LocationName + declared.Name)
			key := strconv.Quote(declared.Name)
			alloc := "if " + field + " == nil {\n" + field + " = " + mapType + "{}\n}\n"
			if placement == PlacementPrefixHeaders {
				stmts, expr, err := decodeValue(ctx, w, site, value, "val")
				if err != nil {
					return "", err
				}
				code += "if val := response.Header.Get(" + header + "); val != \"\" {\n" +
					stmts + "\n" + alloc +
					field + "[" + key + "] = " + expr + "\n}\n"
				continue
			}
			elemMember := value.Member("member")
			elem, err := memberTarget(ctx.Model, value, "member")
			if err != nil {
				return "", err
			}
			elemSite := site
			elemSite.formats = append(append([]shapedef.TimestampFormat{}, site.formats...), elemMember.TimestampFormat)
			list, err := decodeList(ctx, w, elemSite, elem)
			if err != nil {
				return "", err
			}
			code += "if vals := response.Header.Values(" + header + "); len(vals) > 0 {\n" +
				list + "\n" + alloc +
				field + "[" + key + "] = list\n}\n"
		}
		return code, nil
	}
	return "", &shapedef.CodegenError{Shape: b.Member.ID, Msg: "unexpected http binding placement " + placement.String()}
}

// decodeList returns statements building list, a slice of elem values, with
// one element per entry of vals.
func decodeList(ctx *GenerationContext, w *Writer, site scalarSite, elem *shapedef.Shape) (string, error) {
	elemType, err := ctx.Symbols.ElementType(w, ctx.Model, elem)
	if err != nil {
		return "", err
	}
	stmts, expr, err := decodeValue(ctx, w, site, elem, "val")
	if err != nil {
		return "", err
	}
	return "list := make([]" + elemType + ", 0, len(vals))\n" +
		"for _, val := range vals {\n" +
		stmts + "\n" +
		"list = append(list, " + expr + ")\n}", nil
}
