package httpbinding

import (
	"github.com/Unity-Technologies/restbind/shapedef"
)

// serializeMiddleware is the template data of SerializeMiddlewareTemplate.
type serializeMiddleware struct {
	Name      string
	InputType string
	Method    string
	URI       string
	// BindingFunc is the REST encode function, "" when the input has no
	// REST-bound members.
	BindingFunc      string
	DocumentDelegate string
}

// deserializeMiddleware is the template data of
// DeserializeMiddlewareTemplate.
type deserializeMiddleware struct {
	Name       string
	OutputType string
	ErrorCheck string
	// BindingFunc is the REST decode function, "" when the output has no
	// REST-bound members.
	BindingFunc      string
	DocumentDelegate string
}

func generateSerializeMiddleware(ctx *GenerationContext, w *Writer, op *shapedef.Operation, bindings shapedef.BindingTable) error {
	proto := ctx.Protocol.Name()
	m := serializeMiddleware{
		Name:      SerializeMiddlewareName(proto, op.ID),
		InputType: ctx.Symbols.TypeRef(w, op.Input),
		Method:    op.HTTP.Method,
		URI:       op.HTTP.URI,
	}
	if bindings.HasRest() {
		m.BindingFunc = SerializeHTTPBindingsName(proto, op.Input)
	}
	delegate, err := ctx.Protocol.SerializeDocumentDelegate(ctx, w, op, bindings)
	if err != nil {
		return err
	}
	m.DocumentDelegate = delegate

	w.AddImports(ImportContext, ImportFmt)
	w.AddImport(ImportSmithy, "")
	w.AddImport(ImportMiddleware, "")
	w.AddImport(ImportSmithyHTTP, "")
	w.AddImport(ImportHTTPBinding, "")
	return w.WriteTemplate("SerializeMiddlewareTemplate", SerializeMiddlewareTemplate, m)
}

func generateDeserializeMiddleware(ctx *GenerationContext, w *Writer, op *shapedef.Operation, bindings shapedef.BindingTable) error {
	proto := ctx.Protocol.Name()
	m := deserializeMiddleware{
		Name:       DeserializeMiddlewareName(proto, op.ID),
		OutputType: ctx.Symbols.TypeRef(w, op.Output),
	}
	if bindings.HasRest() {
		m.BindingFunc = DeserializeHTTPBindingsName(proto, op.Output)
	}
	check, err := ctx.Protocol.ErrorCheck(ctx, w, op, ErrorDispatcherName(proto, op.ID))
	if err != nil {
		return err
	}
	m.ErrorCheck = check
	delegate, err := ctx.Protocol.DeserializeDocumentDelegate(ctx, w, op, bindings)
	if err != nil {
		return err
	}
	m.DocumentDelegate = delegate

	w.AddImports(ImportContext, ImportFmt)
	w.AddImport(ImportSmithy, "")
	w.AddImport(ImportMiddleware, "")
	w.AddImport(ImportSmithyHTTP, "")
	return w.WriteTemplate("DeserializeMiddlewareTemplate", DeserializeMiddlewareTemplate, m)
}
