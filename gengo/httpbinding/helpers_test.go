package httpbinding

import (
	"testing"

	"github.com/Unity-Technologies/restbind/gengo/gentesthelper"
	"github.com/Unity-Technologies/restbind/shapedef"
)

const thingsModel = `{
	"smithy": "1.0",
	"shapes": {
		"example.things#Things": {
			"type": "service",
			"version": "2021-01-01",
			"operations": [
				{"target": "example.things#PutThing"},
				{"target": "example.things#Ping"},
				{"target": "example.things#Untraced"}
			]
		},
		"example.things#PutThing": {
			"type": "operation",
			"input": {"target": "example.things#PutThingInput"},
			"output": {"target": "example.things#PutThingOutput"},
			"errors": [{"target": "example.things#NotFound"}],
			"traits": {"smithy.api#http": {"method": "PUT", "uri": "/things/{id}?mode=full", "code": 200}}
		},
		"example.things#Ping": {
			"type": "operation",
			"input": {"target": "example.things#PingInput"},
			"output": {"target": "example.things#PingOutput"},
			"errors": [{"target": "example.things#NotFound"}],
			"traits": {"smithy.api#http": {"method": "GET", "uri": "/ping", "code": 200}}
		},
		"example.things#Untraced": {
			"type": "operation",
			"input": {"target": "example.things#PingInput"},
			"output": {"target": "example.things#PingOutput"}
		},
		"example.things#PutThingInput": {
			"type": "structure",
			"members": {
				"id": {"target": "smithy.api#String", "traits": {"smithy.api#httpLabel": {}, "smithy.api#required": {}}},
				"count": {"target": "smithy.api#Integer", "traits": {"smithy.api#httpQuery": "count"}},
				"tags": {"target": "example.things#TagList", "traits": {"smithy.api#httpQuery": "tag"}},
				"since": {"target": "smithy.api#Timestamp", "traits": {"smithy.api#httpHeader": "X-Since"}},
				"flags": {"target": "example.things#FlagList", "traits": {"smithy.api#httpHeader": "X-Flags"}},
				"meta": {"target": "example.things#Metadata", "traits": {"smithy.api#httpPrefixHeaders": "X-Meta-"}},
				"size": {"target": "smithy.api#Long", "traits": {"smithy.api#httpHeader": "X-Size", "smithy.api#required": {}}},
				"body": {"target": "example.things#Thing"}
			}
		},
		"example.things#PutThingOutput": {
			"type": "structure",
			"members": {
				"etag": {"target": "smithy.api#String", "traits": {"smithy.api#httpHeader": "ETag"}},
				"version": {"target": "smithy.api#Integer", "traits": {"smithy.api#httpHeader": "X-Version"}},
				"codes": {"target": "example.things#UnitsList", "traits": {"smithy.api#httpHeader": "X-Codes"}},
				"attrs": {"target": "example.things#Metadata", "traits": {"smithy.api#httpPrefixHeaders": "X-Attr-"}},
				"thing": {"target": "example.things#Thing"}
			}
		},
		"example.things#PingInput": {
			"type": "structure",
			"members": {}
		},
		"example.things#PingOutput": {
			"type": "structure",
			"members": {}
		},
		"example.things#NotFound": {
			"type": "structure",
			"members": {
				"resource": {"target": "smithy.api#String", "traits": {"smithy.api#httpHeader": "X-Resource"}},
				"message": {"target": "smithy.api#String"}
			},
			"traits": {"smithy.api#error": "client"}
		},
		"example.things#Thing": {
			"type": "structure",
			"members": {
				"name": {"target": "smithy.api#String"},
				"child": {"target": "example.things#Thing"},
				"parts": {"target": "example.things#PartList"},
				"labels": {"target": "example.things#LabelMap"}
			}
		},
		"example.things#Part": {
			"type": "structure",
			"members": {"n": {"target": "smithy.api#Integer"}}
		},
		"example.things#PartList": {"type": "list", "member": {"target": "example.things#Part"}},
		"example.things#LabelMap": {
			"type": "map",
			"key": {"target": "smithy.api#String"},
			"value": {"target": "example.things#Part"}
		},
		"example.things#TagList": {"type": "list", "member": {"target": "smithy.api#String"}},
		"example.things#FlagList": {"type": "list", "member": {"target": "smithy.api#Boolean"}},
		"example.things#UnitsList": {"type": "list", "member": {"target": "example.things#Units"}},
		"example.things#Units": {
			"type": "string",
			"traits": {"smithy.api#enum": [{"value": "metric"}, {"value": "imperial"}]}
		},
		"example.things#Metadata": {
			"type": "map",
			"key": {"target": "smithy.api#String"},
			"value": {"target": "smithy.api#String"}
		}
	}
}`

func loadThings(t *testing.T) *shapedef.Model {
	t.Helper()
	m, err := shapedef.NewFromString(thingsModel)
	if err != nil {
		t.Fatal("Failed to create a model from the definition string:", err)
	}
	return m
}

// stubProtocol writes placeholder functions for every protocol hook and
// records what it was asked for.
type stubProtocol struct {
	serializerShapes   []ShapeSet
	deserializerShapes []ShapeSet
	errorShapes        []shapedef.ShapeID
}

func (p *stubProtocol) Name() string { return "stub" }

func (p *stubProtocol) DocumentTimestampFormat() shapedef.TimestampFormat {
	return shapedef.FormatEpochSeconds
}

func (p *stubProtocol) SerializeDocumentDelegate(ctx *GenerationContext, w *Writer, op *shapedef.Operation, bindings shapedef.BindingTable) (string, error) {
	if !bindings.Has(shapedef.LocationDocument) {
		return "", nil
	}
	return "_ = input // document", nil
}

func (p *stubProtocol) DeserializeDocumentDelegate(ctx *GenerationContext, w *Writer, op *shapedef.Operation, bindings shapedef.BindingTable) (string, error) {
	if !bindings.Has(shapedef.LocationDocument) {
		return "", nil
	}
	return "_ = output // document", nil
}

func (p *stubProtocol) ErrorCheck(ctx *GenerationContext, w *Writer, op *shapedef.Operation, errorFunc string) (string, error) {
	return "if response.StatusCode >= 300 {\nreturn out, metadata, " + errorFunc + "(response)\n}", nil
}

func (p *stubProtocol) GenerateErrorDispatcher(ctx *GenerationContext, w *Writer, op *shapedef.Operation) error {
	w.Write("func " + ErrorDispatcherName(p.Name(), op.ID) + "(response *smithyhttp.Response) error {\nreturn nil\n}")
	return nil
}

func (p *stubProtocol) GenerateOperationDocumentSerializer(ctx *GenerationContext, w *Writer, op *shapedef.Operation, bindings shapedef.BindingTable) error {
	return nil
}

func (p *stubProtocol) GenerateOperationDocumentDeserializer(ctx *GenerationContext, w *Writer, op *shapedef.Operation, bindings shapedef.BindingTable) error {
	return nil
}

func (p *stubProtocol) GenerateDocumentShapeSerializers(ctx *GenerationContext, w *Writer, shapes ShapeSet) error {
	p.serializerShapes = append(p.serializerShapes, shapes)
	for _, id := range shapes.Sorted() {
		w.Write("func " + DocumentSerializerName(p.Name(), id) + "() {}")
	}
	return nil
}

func (p *stubProtocol) GenerateDocumentShapeDeserializers(ctx *GenerationContext, w *Writer, shapes ShapeSet) error {
	p.deserializerShapes = append(p.deserializerShapes, shapes)
	for _, id := range shapes.Sorted() {
		w.Write("func " + DocumentDeserializerName(p.Name(), id) + "() {}")
	}
	return nil
}

func (p *stubProtocol) GenerateErrorDeserializer(ctx *GenerationContext, w *Writer, errShape *shapedef.Shape, bindings shapedef.BindingTable, restFunc string) error {
	p.errorShapes = append(p.errorShapes, errShape.ID)
	body := "return nil"
	if restFunc != "" {
		body = "output := &" + ctx.Symbols.TypeRef(w, errShape.ID) + "{}\nreturn " + restFunc + "(output, response)"
	}
	w.Write("func " + ErrorDeserializerName(p.Name(), errShape.ID) + "(response *smithyhttp.Response, body []byte) error {\n" + body + "\n}")
	return nil
}

func newTestContext(m *shapedef.Model) (*GenerationContext, *stubProtocol) {
	p := &stubProtocol{}
	return &GenerationContext{
		Model:    m,
		Protocol: p,
		Symbols: &SymbolProvider{
			TypesImportPath: "example.com/things/types",
			TypesPackage:    "types",
		},
	}, p
}

// generateAll runs a complete serializer and deserializer generation into
// two writers.
func generateAll(t *testing.T, ctx *GenerationContext) (ser, de *Writer) {
	t.Helper()
	ser = NewWriter("client")
	seeds, err := GenerateRequestSerializers(ctx, ser)
	if err != nil {
		t.Fatal(err)
	}
	if err := GenerateSharedSerializerComponents(ctx, ser, seeds); err != nil {
		t.Fatal(err)
	}

	de = NewWriter("client")
	seeds, errs, err := GenerateResponseDeserializers(ctx, de)
	if err != nil {
		t.Fatal(err)
	}
	if err := GenerateErrorDeserializers(ctx, de, errs); err != nil {
		t.Fatal(err)
	}
	if err := GenerateSharedDeserializerComponents(ctx, de, seeds); err != nil {
		t.Fatal(err)
	}
	return ser, de
}

// funcOf returns the source of the generated function name.
func funcOf(t *testing.T, w *Writer, name string) string {
	t.Helper()
	code, err := gentesthelper.FuncSource(string(w.Source()), name)
	if err != nil {
		t.Fatalf("%v\n%s", err, w.Source())
	}
	return code
}

func assertSameCode(t *testing.T, want, got string) {
	t.Helper()
	if a, b, diff := gentesthelper.DiffGoCodeCompact(want, got); a != b {
		t.Errorf("generated code differs:\n%s", diff)
	}
}
