package shapedef

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

const weatherModel = `{
	"smithy": "1.0",
	"shapes": {
		"example.weather#Weather": {
			"type": "service",
			"version": "2006-03-01",
			"operations": [{"target": "example.weather#GetCity"}]
		},
		"example.weather#GetCity": {
			"type": "operation",
			"input": {"target": "example.weather#GetCityInput"},
			"output": {"target": "example.weather#GetCityOutput"},
			"errors": [{"target": "example.weather#NoSuchResource"}],
			"traits": {"smithy.api#http": {"method": "GET", "uri": "/cities/{cityId}", "code": 200}}
		},
		"example.weather#Unlisted": {
			"type": "operation",
			"input": {"target": "example.weather#GetCityInput"},
			"output": {"target": "example.weather#GetCityOutput"}
		},
		"example.weather#GetCityInput": {
			"type": "structure",
			"members": {
				"cityId": {"target": "smithy.api#String", "traits": {"smithy.api#httpLabel": {}, "smithy.api#required": {}}},
				"units": {"target": "example.weather#Units", "traits": {"smithy.api#httpQuery": "units"}},
				"since": {"target": "smithy.api#Timestamp", "traits": {"smithy.api#httpHeader": "X-Since", "smithy.api#timestampFormat": "epoch-seconds"}},
				"meta": {"target": "example.weather#Metadata", "traits": {"smithy.api#httpPrefixHeaders": "X-Meta-"}},
				"notes": {"target": "smithy.api#String"}
			}
		},
		"example.weather#GetCityOutput": {
			"type": "structure",
			"members": {
				"name": {"target": "smithy.api#String"},
				"tags": {"target": "example.weather#TagList", "traits": {"smithy.api#httpHeader": "X-Tags"}}
			}
		},
		"example.weather#NoSuchResource": {
			"type": "structure",
			"members": {"resourceType": {"target": "smithy.api#String", "traits": {"smithy.api#required": {}}}},
			"traits": {"smithy.api#error": "client"}
		},
		"example.weather#Units": {
			"type": "string",
			"traits": {"smithy.api#enum": [{"value": "metric"}, {"value": "imperial"}]}
		},
		"example.weather#Metadata": {
			"type": "map",
			"key": {"target": "smithy.api#String"},
			"value": {"target": "smithy.api#String"}
		},
		"example.weather#TagList": {
			"type": "list",
			"member": {"target": "smithy.api#String"}
		}
	}
}`

func loadWeather(t *testing.T) *Model {
	m, err := NewFromString(weatherModel)
	if err != nil {
		t.Fatal("Failed to create a model from the definition string:", err)
	}
	return m
}

func TestLoad(t *testing.T) {
	m := loadWeather(t)

	if got, want := m.Service, ShapeID("example.weather#Weather"); got != want {
		t.Errorf("service = %q, want %q", got, want)
	}
	if len(m.Operations) != 1 {
		t.Fatalf("operations = %s, want only the service's operation", spew.Sdump(m.Operations))
	}

	want := &Operation{
		ID:     "example.weather#GetCity",
		Input:  "example.weather#GetCityInput",
		Output: "example.weather#GetCityOutput",
		Errors: []ShapeID{"example.weather#NoSuchResource"},
		HTTP:   &HTTPTrait{Method: "GET", URI: "/cities/{cityId}", Code: 200},
	}
	if diff := cmp.Diff(want, m.Operations[0]); diff != "" {
		t.Errorf("operation mismatch (-want +got):\n%s", diff)
	}

	input, err := m.Expect("example.weather#GetCityInput")
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, mem := range input.Members {
		names = append(names, mem.Name)
	}
	if diff := cmp.Diff([]string{"cityId", "meta", "notes", "since", "units"}, names); diff != "" {
		t.Errorf("members not sorted by name (-want +got):\n%s", diff)
	}

	var cases = []struct {
		member       string
		location     Location
		locationName string
	}{
		{"cityId", LocationLabel, "cityId"},
		{"meta", LocationPrefixHeaders, "X-Meta-"},
		{"notes", LocationDocument, "notes"},
		{"since", LocationHeader, "X-Since"},
		{"units", LocationQuery, "units"},
	}
	for _, c := range cases {
		mem := input.Member(c.member)
		if mem.Location != c.location || mem.LocationName != c.locationName {
			t.Errorf("member %q bound to %v %q, want %v %q", c.member, mem.Location, mem.LocationName, c.location, c.locationName)
		}
	}
	if !input.Member("cityId").Required {
		t.Error("cityId should be required")
	}
	if got := input.Member("since").TimestampFormat; got != FormatEpochSeconds {
		t.Errorf("since timestamp format = %q", got)
	}

	units, _ := m.Expect("example.weather#Units")
	if !units.IsEnum() {
		t.Error("Units should be enum-kind")
	}
	nsr, _ := m.Expect("example.weather#NoSuchResource")
	if !nsr.IsError() || nsr.Member("resourceType").Location != LocationDocument {
		t.Errorf("error shape not loaded as expected: %s", spew.Sdump(nsr))
	}
	if _, ok := m.Shape("smithy.api#Timestamp"); !ok {
		t.Error("prelude shapes should be present")
	}
}

func TestLoadErrors(t *testing.T) {
	var cases = []struct {
		name, def string
		shape     ShapeID
	}{
		{
			name:  "unsupported type",
			def:   `{"smithy": "1.0", "shapes": {"ns#Thing": {"type": "apple"}}}`,
			shape: "ns#Thing",
		},
		{
			name: "conflicting bindings",
			def: `{"smithy": "1.0", "shapes": {"ns#In": {"type": "structure", "members": {
				"a": {"target": "smithy.api#String", "traits": {"smithy.api#httpHeader": "A", "smithy.api#httpQuery": "a"}}}}}}`,
			shape: "ns#In$a",
		},
		{
			name:  "list without member",
			def:   `{"smithy": "1.0", "shapes": {"ns#L": {"type": "list"}}}`,
			shape: "ns#L",
		},
	}
	for _, c := range cases {
		_, err := NewFromString(c.def)
		if err == nil {
			t.Errorf("%s: expected an error", c.name)
			continue
		}
		cerr, ok := errors.Cause(err).(*CodegenError)
		if !ok {
			t.Errorf("%s: error %v is not a *CodegenError", c.name, err)
			continue
		}
		if cerr.Shape != c.shape {
			t.Errorf("%s: error names %q, want %q", c.name, cerr.Shape, c.shape)
		}
	}

	if _, err := NewFromString(`{"shapes": {}}`); err == nil {
		t.Error("a document without a smithy version should be rejected")
	}
}

func TestShapeID(t *testing.T) {
	id := ShapeID("example.weather#GetCityInput$cityId")
	if got := id.Namespace(); got != "example.weather" {
		t.Errorf("Namespace() = %q", got)
	}
	if got := id.Name(); got != "GetCityInput" {
		t.Errorf("Name() = %q", got)
	}
	if got := id.Member(); got != "cityId" {
		t.Errorf("Member() = %q", got)
	}
	if got := ShapeID("ns#A").WithMember("b"); got != "ns#A$b" {
		t.Errorf("WithMember() = %q", got)
	}
}

func TestKindString(t *testing.T) {
	for k := KindInvalid + 1; int(k) < KindTotal; k++ {
		if got := KindFromString(k.String()); got != k {
			t.Errorf("KindFromString(%q) = %v, want %v", k.String(), got, k)
		}
	}
	if KindFromString("invalid") != KindInvalid {
		t.Error("the invalid kind name must not round trip")
	}
}

func TestBindings(t *testing.T) {
	m := loadWeather(t)
	op := m.Operations[0]

	req, err := m.RequestBindings(op)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, b := range req.Rest() {
		got = append(got, b.Member.Name+":"+b.Location.String())
	}
	want := []string{"cityId:LABEL", "meta:PREFIX_HEADERS", "since:HEADER", "units:QUERY"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rest bindings (-want +got):\n%s", diff)
	}
	if !req.Has(LocationDocument) {
		t.Error("notes should be a document binding")
	}

	resp, err := m.ResponseBindings(op)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Rest()) != 1 || resp.Rest()[0].Target.Kind != KindList {
		t.Errorf("unexpected response bindings: %s", spew.Sdump(resp.Rest()))
	}

	errBindings, err := m.ShapeBindings("example.weather#NoSuchResource")
	if err != nil {
		t.Fatal(err)
	}
	if errBindings.HasRest() {
		t.Error("NoSuchResource has no REST bindings")
	}
}

func TestBindingsMissingShapes(t *testing.T) {
	m := NewModel()
	op := &Operation{ID: "ns#Op"}
	for name, fn := range map[string]func(*Operation) (BindingTable, error){
		"request":  m.RequestBindings,
		"response": m.ResponseBindings,
	} {
		_, err := fn(op)
		cerr, ok := errors.Cause(err).(*CodegenError)
		if !ok || cerr.Shape != "ns#Op" {
			t.Errorf("%s: expected CodegenError naming ns#Op, got %v", name, err)
		}
	}
}

func TestDuplicateBinding(t *testing.T) {
	m := NewModel()
	m.AddShape(&Shape{ID: "smithy.api#String", Kind: KindString})
	err := m.AddShape(&Shape{ID: "ns#In", Kind: KindStructure, Members: []*Member{
		{Name: "a", Target: "smithy.api#String", Location: LocationHeader, LocationName: "A"},
		{Name: "a", Target: "smithy.api#String", Location: LocationQuery, LocationName: "a"},
	}})
	if err != nil {
		t.Fatal(err)
	}
	_, err = m.ShapeBindings("ns#In")
	cerr, ok := errors.Cause(err).(*CodegenError)
	if !ok || cerr.Shape != "ns#In" {
		t.Fatalf("expected duplicate binding CodegenError, got %v", err)
	}
}

func TestDetermineTimestampFormat(t *testing.T) {
	var cases = []struct {
		loc     Location
		sources []TimestampFormat
		want    TimestampFormat
	}{
		{LocationHeader, nil, FormatHTTPDate},
		{LocationPrefixHeaders, nil, FormatHTTPDate},
		{LocationLabel, nil, FormatDateTime},
		{LocationQuery, nil, FormatDateTime},
		{LocationDocument, nil, FormatEpochSeconds},
		{LocationHeader, []TimestampFormat{FormatEpochSeconds}, FormatEpochSeconds},
		{LocationQuery, []TimestampFormat{FormatUnset, FormatHTTPDate}, FormatHTTPDate},
		{LocationQuery, []TimestampFormat{"bogus"}, "bogus"},
	}
	for _, c := range cases {
		if got := DetermineTimestampFormat(c.loc, FormatEpochSeconds, c.sources...); got != c.want {
			t.Errorf("DetermineTimestampFormat(%v, %v) = %q, want %q", c.loc, c.sources, got, c.want)
		}
	}
}
