package gentesthelper

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDiffGoCode(t *testing.T) {
	code := []string{
		// Normal
		`func Foo() {
			println("test")
		}`,
		// Leading and trailing whitespace
		`

		func Foo () {
			println("test")
		}

		`,
		// Indentation differences, tabs
		`				func Foo() {
										println("test")
			}`,
	}

	for _, v := range code {
		a, b, di := DiffGoCode(code[0], v)
		if strings.Compare(a, b) != 0 {
			t.Errorf("Code differs: %s", di)
		}
	}
}

func TestDiffGoCodeCompact(t *testing.T) {
	a := "func Foo() {\n\tx := 1\n\n\n\tprintln(x)\n}"
	b := "func Foo() {\n\tx := 1\n\tprintln(x)\n}"
	if outA, outB, diff := DiffGoCodeCompact(a, b); outA != outB {
		t.Errorf("blank lines should not count: %s", diff)
	}
	if outA, outB, _ := DiffGoCodeCompact(a, strings.Replace(b, "1", "2", 1)); outA == outB {
		t.Error("a changed statement should count")
	}
}

const sample = `package client

import (
	"fmt"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

type handler struct{}

func (h *handler) ID() string { return "x" }

func first(r *smithyhttp.Response) error {
	return fmt.Errorf("first %v", r)
}

func second() {}
`

func TestFuncNames(t *testing.T) {
	names, err := FuncNames(sample)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"first", "second"}, names); diff != "" {
		t.Errorf("func names (-want +got):\n%s", diff)
	}
}

func TestFuncSource(t *testing.T) {
	got, err := FuncSource(sample, "first")
	if err != nil {
		t.Fatal(err)
	}
	want := `func first(r *smithyhttp.Response) error {
	return fmt.Errorf("first %v", r)
}`
	if a, b, diff := DiffGoCode(want, got); a != b {
		t.Errorf("func source differs:\n%s", diff)
	}

	if _, err := FuncSource(sample, "ID"); err == nil {
		t.Error("methods should not be found as functions")
	}
}

func TestImports(t *testing.T) {
	paths, err := Imports(sample)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"fmt", "github.com/aws/smithy-go/transport/http"}, paths); diff != "" {
		t.Errorf("imports (-want +got):\n%s", diff)
	}
}

func TestParseFileError(t *testing.T) {
	if _, _, err := ParseFile("package x\nfunc {"); err == nil {
		t.Error("expected a parse error")
	}
}
