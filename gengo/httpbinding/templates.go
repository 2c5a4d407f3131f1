package httpbinding

// EncodeFuncTemplate is the template for the function writing the REST-bound
// members of an operation input onto the request encoder.
var EncodeFuncTemplate = `
{{- with $f := . -}}
func {{$f.Name}}(v *{{$f.Type}}, encoder *httpbinding.Encoder) error {
	if v == nil {
		return fmt.Errorf("unsupported serialization of nil %T", v)
	}
{{range $code := $f.Members}}
	{{$code}}
{{end}}
	return nil
}
{{- end -}}
`

// DecodeFuncTemplate is the template for the function reading the REST-bound
// members of an output or error shape from a response.
var DecodeFuncTemplate = `
{{- with $f := . -}}
func {{$f.Name}}(v *{{$f.Type}}, response *smithyhttp.Response) error {
	if v == nil {
		return fmt.Errorf("unsupported deserialization for nil %T", v)
	}
{{range $code := $f.Members}}
	{{$code}}
{{end}}
	return nil
}
{{- end -}}
`

// SerializeMiddlewareTemplate is the template for the serialize step of one
// operation.
var SerializeMiddlewareTemplate = `
{{- with $m := . -}}
type {{$m.Name}} struct {
}

func (*{{$m.Name}}) ID() string {
	return "OperationSerializer"
}

func (m *{{$m.Name}}) HandleSerialize(ctx context.Context, in middleware.SerializeInput, next middleware.SerializeHandler) (
	out middleware.SerializeOutput, metadata middleware.Metadata, err error,
) {
	request, ok := in.Request.(*smithyhttp.Request)
	if !ok {
		return out, metadata, &smithy.SerializationError{Err: fmt.Errorf("unknown transport type %T", in.Request)}
	}

	input, ok := in.Parameters.(*{{$m.InputType}})
	_ = input
	if !ok {
		return out, metadata, &smithy.SerializationError{Err: fmt.Errorf("unknown input parameters type %T", in.Parameters)}
	}

	opPath, opQuery := httpbinding.SplitURI({{Quote $m.URI}})
	request.URL.Path = smithyhttp.JoinPath(request.URL.Path, opPath)
	request.URL.RawQuery = smithyhttp.JoinRawQuery(request.URL.RawQuery, opQuery)
	request.Method = {{Quote $m.Method}}
	restEncoder, err := httpbinding.NewEncoder(request.URL.Path, request.URL.RawQuery, request.Header)
	if err != nil {
		return out, metadata, &smithy.SerializationError{Err: err}
	}
{{if $m.BindingFunc}}
	if err := {{$m.BindingFunc}}(input, restEncoder); err != nil {
		return out, metadata, &smithy.SerializationError{Err: err}
	}
{{end}}
{{- if $m.DocumentDelegate}}
	{{$m.DocumentDelegate}}
{{end}}
	if request.Request, err = restEncoder.Encode(request.Request); err != nil {
		return out, metadata, &smithy.SerializationError{Err: err}
	}
	in.Request = request

	return next.HandleSerialize(ctx, in)
}
{{- end -}}
`

// DeserializeMiddlewareTemplate is the template for the deserialize step of
// one operation.
var DeserializeMiddlewareTemplate = `
{{- with $m := . -}}
type {{$m.Name}} struct {
}

func (*{{$m.Name}}) ID() string {
	return "OperationDeserializer"
}

func (m *{{$m.Name}}) HandleDeserialize(ctx context.Context, in middleware.DeserializeInput, next middleware.DeserializeHandler) (
	out middleware.DeserializeOutput, metadata middleware.Metadata, err error,
) {
	out, metadata, err = next.HandleDeserialize(ctx, in)
	if err != nil {
		return out, metadata, err
	}

	response, ok := out.RawResponse.(*smithyhttp.Response)
	if !ok {
		return out, metadata, &smithy.DeserializationError{Err: fmt.Errorf("unknown transport type %T", out.RawResponse)}
	}

	{{$m.ErrorCheck}}

	output := &{{$m.OutputType}}{}
	out.Result = output
{{if $m.BindingFunc}}
	err = {{$m.BindingFunc}}(output, response)
	if err != nil {
		return out, metadata, &smithy.DeserializationError{Err: fmt.Errorf("failed to decode response with invalid Http bindings, %w", err)}
	}
{{end}}
{{- if $m.DocumentDelegate}}
	{{$m.DocumentDelegate}}
{{end}}
	return out, metadata, err
}
{{- end -}}
`
