package httpbinding

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Unity-Technologies/restbind/shapedef"
)

// addErrorShapes adds the declared errors of op to errs, and the document
// shapes their bindings refer to to seeds.
func addErrorShapes(model *shapedef.Model, op *shapedef.Operation, errs, seeds *ShapeSet) error {
	for _, id := range op.Errors {
		bindings, err := model.ShapeBindings(id)
		if err != nil {
			return errors.Wrapf(err, "cannot resolve error %s of %s", id, op.ID)
		}
		addDocumentSeeds(bindings, seeds)
		errs.Add(id)
	}
	return nil
}

// GenerateErrorDeserializers writes, once per distinct error shape in errs
// and in id order, its REST decode function when it has REST-bound members,
// and the protocol's error deserializer.
func GenerateErrorDeserializers(ctx *GenerationContext, w *Writer, errs ShapeSet) error {
	for _, id := range errs.Sorted() {
		shape, err := ctx.Model.Expect(id)
		if err != nil {
			return err
		}
		bindings, err := ctx.Model.ShapeBindings(id)
		if err != nil {
			return errors.Wrapf(err, "cannot generate error deserializer for %s", id)
		}
		log.WithField("error", id).Debug("Generating error deserializer")

		var restFunc string
		if bindings.HasRest() {
			restFunc = DeserializeHTTPBindingsName(ctx.Protocol.Name(), id)
			if err := generateDecodeFunc(ctx, w, id, bindings); err != nil {
				return errors.Wrapf(err, "cannot generate http bindings deserializer for %s", id)
			}
		}
		if err := ctx.Protocol.GenerateErrorDeserializer(ctx, w, shape, bindings, restFunc); err != nil {
			return errors.Wrapf(err, "cannot generate error deserializer for %s", id)
		}
	}
	return nil
}
