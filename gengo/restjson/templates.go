package restjson

// serializeDelegateTemplate writes the document or payload body from the
// serialize middleware.
var serializeDelegateTemplate = `
{{- with $d := . -}}
restEncoder.SetHeader("Content-Type").String({{Quote $d.ContentType}})

body, err := {{$d.Func}}(input)
if err != nil {
	return out, metadata, &smithy.SerializationError{Err: err}
}
if request, err = request.SetStream(bytes.NewReader(body)); err != nil {
	return out, metadata, &smithy.SerializationError{Err: err}
}
{{- end -}}
`

// deserializeDelegateTemplate reads the document or payload body from the
// deserialize middleware.
var deserializeDelegateTemplate = `
{{- with $d := . -}}
body, err := io.ReadAll(response.Body)
if err != nil {
	return out, metadata, &smithy.DeserializationError{Err: fmt.Errorf("failed to read response body, %w", err)}
}
if err = {{$d.Func}}(output, body); err != nil {
	return out, metadata, &smithy.DeserializationError{Err: err, Snapshot: body}
}
{{- end -}}
`

var errorCheckTemplate = `
if response.StatusCode < 200 || response.StatusCode >= 300 {
	return out, metadata, {{.}}(response)
}
`

var errorDispatcherTemplate = `
{{- with $d := . -}}
func {{$d.Name}}(response *smithyhttp.Response) error {
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return &smithy.DeserializationError{Err: fmt.Errorf("failed to read response error body, %w", err)}
	}
{{- if not $d.Errors}}
	_ = body
{{- end}}

	errorCode := "UnknownError"
	if v := response.Header.Get({{Quote $d.Header}}); len(v) != 0 {
		if i := strings.IndexByte(v, ':'); i >= 0 {
			v = v[:i]
		}
		errorCode = v
	}

	switch {
{{- range $e := $d.Errors}}
	case strings.EqualFold({{Quote $e.Code}}, errorCode):
		return {{$e.Func}}(response, body)
{{end}}
	default:
		return &smithy.GenericAPIError{Code: errorCode, Message: errorCode}
	}
}
{{- end -}}
`

var errorDeserializerTemplate = `
{{- with $d := . -}}
func {{$d.Name}}(response *smithyhttp.Response, body []byte) error {
	output := &{{$d.Type}}{}
{{- if $d.RestFunc}}
	if err := {{$d.RestFunc}}(output, response); err != nil {
		return &smithy.DeserializationError{Err: fmt.Errorf("failed to decode response error with invalid Http bindings, %w", err)}
	}
{{- end}}
{{- if $d.DocumentFunc}}
	if err := {{$d.DocumentFunc}}(output, body); err != nil {
		return &smithy.DeserializationError{Err: err, Snapshot: body}
	}
{{- end}}
	return output
}
{{- end -}}
`

var opDocumentSerializerTemplate = `
{{- with $f := . -}}
func {{$f.Name}}(v *{{$f.Type}}) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("unsupported serialization of nil %T", v)
	}
{{- if $f.Payload}}
	{{$f.Payload}}
{{- else}}
	doc := map[string]interface{}{}
{{range $code := $f.Members}}
	{{$code}}
{{end}}
	return json.Marshal(doc)
{{- end}}
}
{{- end -}}
`

var opDocumentDeserializerTemplate = `
{{- with $f := . -}}
func {{$f.Name}}(v *{{$f.Type}}, body []byte) error {
	if v == nil {
		return fmt.Errorf("unsupported deserialization for nil %T", v)
	}
	if len(body) == 0 {
		return nil
	}
{{- if $f.Payload}}
	{{$f.Payload}}
{{- else}}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return err
	}
{{range $code := $f.Members}}
	{{$code}}
{{end}}
{{- end}}
	return nil
}
{{- end -}}
`

var structureSerializerTemplate = `
{{- with $f := . -}}
func {{$f.Name}}(v {{$f.Type}}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	doc := map[string]interface{}{}
{{range $code := $f.Members}}
	{{$code}}
{{end}}
	return doc, nil
}
{{- end -}}
`

var listSerializerTemplate = `
{{- with $f := . -}}
func {{$f.Name}}(v {{$f.Type}}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	array := make([]interface{}, 0, len(v))
	for i := range v {
		{{$f.Element}}
	}
	return array, nil
}
{{- end -}}
`

var mapSerializerTemplate = `
{{- with $f := . -}}
func {{$f.Name}}(v {{$f.Type}}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	obj := make(map[string]interface{}, len(v))
	for key, value := range v {
		{{$f.Element}}
	}
	return obj, nil
}
{{- end -}}
`

var documentSerializerTemplate = `
func {{.Name}}(v interface{}) (interface{}, error) {
	return v, nil
}
`

var structureDeserializerTemplate = `
{{- with $f := . -}}
func {{$f.Name}}(v *{{$f.Type}}, data json.RawMessage) error {
	if v == nil {
		return fmt.Errorf("unexpected nil of type %T", v)
	}
	if string(data) == "null" {
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	sv := *v
	if sv == nil {
		sv = &{{$f.Struct}}{}
	}
{{range $code := $f.Members}}
	{{$code}}
{{end}}
	*v = sv
	return nil
}
{{- end -}}
`

var listDeserializerTemplate = `
{{- with $f := . -}}
func {{$f.Name}}(v *{{$f.Type}}, data json.RawMessage) error {
	if v == nil {
		return fmt.Errorf("unexpected nil of type %T", v)
	}
	if string(data) == "null" {
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	cv := make({{$f.Type}}, 0, len(raw))
	for _, item := range raw {
		var col {{$f.ElementType}}
		{{$f.Element}}
		cv = append(cv, col)
	}
	*v = cv
	return nil
}
{{- end -}}
`

var mapDeserializerTemplate = `
{{- with $f := . -}}
func {{$f.Name}}(v *{{$f.Type}}, data json.RawMessage) error {
	if v == nil {
		return fmt.Errorf("unexpected nil of type %T", v)
	}
	if string(data) == "null" {
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	mv := make({{$f.Type}}, len(raw))
	for key, item := range raw {
		var parsed {{$f.ElementType}}
		{{$f.Element}}
		mv[key] = parsed
	}
	*v = mv
	return nil
}
{{- end -}}
`

var documentDeserializerTemplate = `
func {{.Name}}(v *interface{}, data json.RawMessage) error {
	if v == nil {
		return fmt.Errorf("unexpected nil of type %T", v)
	}
	return json.Unmarshal(data, v)
}
`
