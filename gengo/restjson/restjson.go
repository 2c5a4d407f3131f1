// Package restjson is the REST-JSON HTTP binding protocol: document members
// travel as one JSON object in the body, a payload member is the whole body,
// and an error response is any non-2xx status whose error shape is named by
// the X-Amzn-Errortype header.
package restjson

import (
	"github.com/pkg/errors"

	"github.com/Unity-Technologies/restbind/gengo/httpbinding"
	"github.com/Unity-Technologies/restbind/shapedef"
)

const (
	// ProtocolName prefixes generated function and type names.
	ProtocolName = "awsRestjson1"
	// ContentType is the content type of document bodies.
	ContentType = "application/json"
	// ErrorTypeHeader names the error shape of an error response. Anything
	// after a ':' is ignored.
	ErrorTypeHeader = "X-Amzn-Errortype"
)

// Protocol implements httpbinding.Protocol for REST-JSON.
type Protocol struct{}

// New returns the REST-JSON protocol.
func New() *Protocol {
	return &Protocol{}
}

var _ httpbinding.Protocol = (*Protocol)(nil)

func (p *Protocol) Name() string {
	return ProtocolName
}

func (p *Protocol) DocumentTimestampFormat() shapedef.TimestampFormat {
	return shapedef.FormatEpochSeconds
}

// bodyBindings splits the members owned by the body into the document
// members and the payload member, if any.
func bodyBindings(bindings shapedef.BindingTable) (document shapedef.BindingTable, payload *shapedef.Binding) {
	for _, b := range bindings {
		switch b.Location {
		case shapedef.LocationDocument:
			document = append(document, b)
		case shapedef.LocationPayload:
			payload = b
		}
	}
	return document, payload
}

// hasBody reports whether anything in bindings travels in the body.
func hasBody(bindings shapedef.BindingTable) bool {
	document, payload := bodyBindings(bindings)
	return len(document) > 0 || payload != nil
}

// payloadContentType is the content type of a body holding target.
func payloadContentType(target *shapedef.Shape) string {
	switch target.Kind {
	case shapedef.KindBlob:
		return "application/octet-stream"
	case shapedef.KindString:
		return "text/plain"
	}
	return ContentType
}

type delegate struct {
	Func        string
	ContentType string
}

func (p *Protocol) SerializeDocumentDelegate(ctx *httpbinding.GenerationContext, w *httpbinding.Writer, op *shapedef.Operation, bindings shapedef.BindingTable) (string, error) {
	if !hasBody(bindings) {
		return "", nil
	}
	d := delegate{
		Func:        httpbinding.OpDocumentSerializerName(p.Name(), op.Input),
		ContentType: ContentType,
	}
	if _, payload := bodyBindings(bindings); payload != nil {
		d.ContentType = payloadContentType(payload.Target)
	}
	w.AddImports(httpbinding.ImportBytes)
	return httpbinding.ApplyTemplate("serializeDelegateTemplate", serializeDelegateTemplate, d, httpbinding.TemplateFuncs)
}

func (p *Protocol) DeserializeDocumentDelegate(ctx *httpbinding.GenerationContext, w *httpbinding.Writer, op *shapedef.Operation, bindings shapedef.BindingTable) (string, error) {
	if !hasBody(bindings) {
		return "", nil
	}
	d := delegate{Func: httpbinding.OpDocumentDeserializerName(p.Name(), op.Output)}
	w.AddImports(httpbinding.ImportIO)
	return httpbinding.ApplyTemplate("deserializeDelegateTemplate", deserializeDelegateTemplate, d, httpbinding.TemplateFuncs)
}

func (p *Protocol) ErrorCheck(ctx *httpbinding.GenerationContext, w *httpbinding.Writer, op *shapedef.Operation, errorFunc string) (string, error) {
	return httpbinding.ApplyTemplate("errorCheckTemplate", errorCheckTemplate, errorFunc, httpbinding.TemplateFuncs)
}

type dispatchCase struct {
	Code string
	Func string
}

type dispatcher struct {
	Name   string
	Header string
	Errors []dispatchCase
}

func (p *Protocol) GenerateErrorDispatcher(ctx *httpbinding.GenerationContext, w *httpbinding.Writer, op *shapedef.Operation) error {
	d := dispatcher{
		Name:   httpbinding.ErrorDispatcherName(p.Name(), op.ID),
		Header: ErrorTypeHeader,
	}
	for _, id := range op.Errors {
		d.Errors = append(d.Errors, dispatchCase{
			Code: id.Name(),
			Func: httpbinding.ErrorDeserializerName(p.Name(), id),
		})
	}
	w.AddImports(httpbinding.ImportFmt, httpbinding.ImportIO, httpbinding.ImportStrings)
	w.AddImport(httpbinding.ImportSmithy, "")
	w.AddImport(httpbinding.ImportSmithyHTTP, "")
	return w.WriteTemplate("errorDispatcherTemplate", errorDispatcherTemplate, d)
}

type errorDeserializer struct {
	Name         string
	Type         string
	RestFunc     string
	DocumentFunc string
}

func (p *Protocol) GenerateErrorDeserializer(ctx *httpbinding.GenerationContext, w *httpbinding.Writer, errShape *shapedef.Shape, bindings shapedef.BindingTable, restFunc string) error {
	d := errorDeserializer{
		Name:     httpbinding.ErrorDeserializerName(p.Name(), errShape.ID),
		Type:     ctx.Symbols.TypeRef(w, errShape.ID),
		RestFunc: restFunc,
	}
	if hasBody(bindings) {
		d.DocumentFunc = httpbinding.OpDocumentDeserializerName(p.Name(), errShape.ID)
		if err := p.generateOpDocumentDeserializer(ctx, w, errShape.ID, bindings); err != nil {
			return errors.Wrapf(err, "cannot generate document deserializer for error %s", errShape.ID)
		}
	}
	w.AddImports(httpbinding.ImportFmt)
	w.AddImport(httpbinding.ImportSmithy, "")
	w.AddImport(httpbinding.ImportSmithyHTTP, "")
	return w.WriteTemplate("errorDeserializerTemplate", errorDeserializerTemplate, d)
}

func (p *Protocol) GenerateOperationDocumentSerializer(ctx *httpbinding.GenerationContext, w *httpbinding.Writer, op *shapedef.Operation, bindings shapedef.BindingTable) error {
	if !hasBody(bindings) {
		return nil
	}
	return p.generateOpDocumentSerializer(ctx, w, op.Input, bindings)
}

func (p *Protocol) GenerateOperationDocumentDeserializer(ctx *httpbinding.GenerationContext, w *httpbinding.Writer, op *shapedef.Operation, bindings shapedef.BindingTable) error {
	if !hasBody(bindings) {
		return nil
	}
	return p.generateOpDocumentDeserializer(ctx, w, op.Output, bindings)
}
