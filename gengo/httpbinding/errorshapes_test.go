package httpbinding

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Unity-Technologies/restbind/gengo/gentesthelper"
	"github.com/Unity-Technologies/restbind/shapedef"
)

// sharedErrorModel declares n operations that all list the same error.
func sharedErrorModel(t *testing.T, n int) *shapedef.Model {
	t.Helper()
	var refs, ops []string
	for i := 0; i < n; i++ {
		refs = append(refs, fmt.Sprintf(`{"target": "ns#Op%d"}`, i))
		ops = append(ops, fmt.Sprintf(`"ns#Op%d": {
			"type": "operation",
			"input": {"target": "ns#In"},
			"output": {"target": "ns#Out"},
			"errors": [{"target": "ns#Boom"}],
			"traits": {"smithy.api#http": {"method": "POST", "uri": "/op%d", "code": 200}}
		}`, i, i))
	}
	def := `{"smithy": "1.0", "shapes": {
		"ns#Svc": {"type": "service", "operations": [` + strings.Join(refs, ",") + `]},
		` + strings.Join(ops, ",\n") + `,
		"ns#In": {"type": "structure", "members": {}},
		"ns#Out": {"type": "structure", "members": {}},
		"ns#Boom": {
			"type": "structure",
			"members": {
				"code": {"target": "smithy.api#String", "traits": {"smithy.api#httpHeader": "X-Code"}},
				"detail": {"target": "ns#Detail"}
			},
			"traits": {"smithy.api#error": "server"}
		},
		"ns#Detail": {"type": "structure", "members": {"why": {"target": "smithy.api#String"}}}
	}}`
	m, err := shapedef.NewFromString(def)
	if err != nil {
		t.Fatal("Failed to create a model from the definition string:", err)
	}
	return m
}

func TestSharedErrorGeneratedOnce(t *testing.T) {
	ctx, stub := newTestContext(sharedErrorModel(t, 5))
	_, de := generateAll(t, ctx)

	names, err := gentesthelper.FuncNames(string(de.Source()))
	if err != nil {
		t.Fatalf("%v\n%s", err, de.Source())
	}
	count := make(map[string]int)
	for _, n := range names {
		count[n]++
	}

	for name, want := range map[string]int{
		"stub_deserializeErrorBoom":          1,
		"stub_deserializeOpHttpBindingsBoom": 1,
		"stub_deserializeOpErrorOp0":         1,
		"stub_deserializeOpErrorOp4":         1,
	} {
		if count[name] != want {
			t.Errorf("%s generated %d times, want %d", name, count[name], want)
		}
	}

	if diff := cmp.Diff([]shapedef.ShapeID{"ns#Boom"}, stub.errorShapes); diff != "" {
		t.Errorf("error deserializer requests (-want +got):\n%s", diff)
	}

	// Error documents are part of the shared deserializers.
	if len(stub.deserializerShapes) != 1 || !stub.deserializerShapes[0].Has("ns#Detail") {
		t.Errorf("error document shapes not resolved: %v", stub.deserializerShapes)
	}
}

func TestErrorRestFunc(t *testing.T) {
	ctx, _ := newTestContext(loadThings(t))
	_, de := generateAll(t, ctx)

	want := `
func stub_deserializeOpHttpBindingsNotFound(v *types.NotFound, response *smithyhttp.Response) error {
	if v == nil {
		return fmt.Errorf("unsupported deserialization for nil %T", v)
	}
	if val := response.Header.Get("X-Resource"); val != "" {
		v.Resource = &val
	}
	return nil
}
`
	assertSameCode(t, want, funcOf(t, de, "stub_deserializeOpHttpBindingsNotFound"))

	errFunc := funcOf(t, de, "stub_deserializeErrorNotFound")
	if !strings.Contains(errFunc, "return stub_deserializeOpHttpBindingsNotFound(output, response)") {
		t.Errorf("error deserializer does not call the REST decode function:\n%s", errFunc)
	}
}

func TestErrorWithoutRestBindings(t *testing.T) {
	m := loadThings(t)
	nf, _ := m.Shape("example.things#NotFound")
	nf.Member("resource").Location = shapedef.LocationDocument
	ctx, _ := newTestContext(m)
	_, de := generateAll(t, ctx)

	if strings.Contains(de.Body(), "stub_deserializeOpHttpBindingsNotFound") {
		t.Error("an error without REST bindings needs no decode function")
	}
	if !strings.Contains(funcOf(t, de, "stub_deserializeErrorNotFound"), "return nil") {
		t.Error("the error deserializer should get an empty rest function name")
	}
}
