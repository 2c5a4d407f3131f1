// Package httpbinding generates the REST HTTP binding layer of a service
// client: per operation, a function writing the input's header, prefix
// header, label and query members onto a request, a function reading the
// output's header members back from a response, and the serialize and
// deserialize middlewares that run them. Members bound to the document body
// or payload are left to a Protocol, which owns the body codec and the way
// error responses are recognised.
package httpbinding

import (
	log "github.com/sirupsen/logrus"

	"github.com/Unity-Technologies/restbind/shapedef"
)

// Protocol is a concrete HTTP binding protocol. Hooks receive the Writer of
// the file being generated.
type Protocol interface {
	// Name prefixes every generated function and type name.
	Name() string
	// DocumentTimestampFormat is the timestamp format of document and
	// payload members.
	DocumentTimestampFormat() shapedef.TimestampFormat

	// SerializeDocumentDelegate returns middleware statements writing the
	// input's document and payload members to the request body. input and
	// request are in scope, along with restEncoder, out and metadata.
	SerializeDocumentDelegate(ctx *GenerationContext, w *Writer, op *shapedef.Operation, bindings shapedef.BindingTable) (string, error)
	// DeserializeDocumentDelegate returns middleware statements reading the
	// output's document and payload members. output and response are in
	// scope.
	DeserializeDocumentDelegate(ctx *GenerationContext, w *Writer, op *shapedef.Operation, bindings shapedef.BindingTable) (string, error)
	// ErrorCheck returns middleware statements that recognise an error
	// response and return the result of the dispatcher named errorFunc.
	ErrorCheck(ctx *GenerationContext, w *Writer, op *shapedef.Operation, errorFunc string) (string, error)

	// GenerateErrorDispatcher writes the function named
	// ErrorDispatcherName that selects the error shape of a response.
	GenerateErrorDispatcher(ctx *GenerationContext, w *Writer, op *shapedef.Operation) error
	// GenerateOperationDocumentSerializer writes what the serialize
	// delegate calls.
	GenerateOperationDocumentSerializer(ctx *GenerationContext, w *Writer, op *shapedef.Operation, bindings shapedef.BindingTable) error
	// GenerateOperationDocumentDeserializer writes what the deserialize
	// delegate calls.
	GenerateOperationDocumentDeserializer(ctx *GenerationContext, w *Writer, op *shapedef.Operation, bindings shapedef.BindingTable) error
	// GenerateDocumentShapeSerializers is called once per run with the
	// closed set of shapes needing document serializers.
	GenerateDocumentShapeSerializers(ctx *GenerationContext, w *Writer, shapes ShapeSet) error
	// GenerateDocumentShapeDeserializers is called once per run with the
	// closed set of shapes needing document deserializers.
	GenerateDocumentShapeDeserializers(ctx *GenerationContext, w *Writer, shapes ShapeSet) error
	// GenerateErrorDeserializer writes the function named
	// ErrorDeserializerName for one error shape. restFunc names the shape's
	// REST decode function, or is "" when it has no REST bindings.
	GenerateErrorDeserializer(ctx *GenerationContext, w *Writer, errShape *shapedef.Shape, bindings shapedef.BindingTable, restFunc string) error
}

// GenerationContext is what one generation run reads from.
type GenerationContext struct {
	Model    *shapedef.Model
	Protocol Protocol
	Symbols  *SymbolProvider
}

// HTTPBindingOperations returns the operations carrying an http trait.
// Operations without one are skipped with a warning.
func HTTPBindingOperations(ctx *GenerationContext) []*shapedef.Operation {
	var ops []*shapedef.Operation
	for _, op := range ctx.Model.Operations {
		if op.HTTP == nil {
			log.WithField("operation", op.ID).Warnf("Unable to fetch %s protocol request bindings because it does not have an http binding trait", ctx.Protocol.Name())
			continue
		}
		ops = append(ops, op)
	}
	return ops
}
