// Package gentesthelper compares and inspects generated Go source in tests.
package gentesthelper

import (
	"bytes"
	"go/ast"
	"go/format"
	"go/parser"
	"go/printer"
	"go/token"
	"strings"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"
)

// DiffStrings returns the line differences of two strings. Useful for
// examining how generated code differs from expected code.
func DiffStrings(a, b string) string {
	t := difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: "A",
		ToFile:   "B",
		Context:  5,
	}
	text, _ := difflib.GetUnifiedDiffString(t)
	return text
}

// DiffGoCode returns normalized versions of inA and inB using the go formatter
// so that differences in indentation or trailing spaces are ignored. A diff of
// inA and inB is also returned.
func DiffGoCode(inA, inB string) (outA, outB, diff string) {
	codeFormat := func(in string) string {
		// Trim starting and ending space so format starts indenting at 0 for
		// both strings
		out := strings.TrimSpace(in)

		outBytes, err := format.Source([]byte(out))
		if err != nil {
			return "FAILED TO FORMAT\n" + out
		}
		return string(outBytes)
	}
	outA = codeFormat(inA)
	outB = codeFormat(inB)
	diff = DiffStrings(outA, outB)
	return
}

// DiffGoCodeCompact is DiffGoCode with blank lines dropped from both inputs
// first, for comparing generated code whose spacing follows template layout.
func DiffGoCodeCompact(inA, inB string) (outA, outB, diff string) {
	return DiffGoCode(dropBlankLines(inA), dropBlankLines(inB))
}

func dropBlankLines(in string) string {
	lines := strings.Split(in, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}

// ParseFile parses a complete generated Go file.
func ParseFile(src string) (*token.FileSet, *ast.File, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "generated.go", src, parser.ParseComments)
	if err != nil {
		return nil, nil, errors.Wrap(err, "generated code does not parse")
	}
	return fset, f, nil
}

// FuncNames returns the names of the top level functions of src in source
// order. Methods are not included.
func FuncNames(src string) ([]string, error) {
	_, f, err := ParseFile(src)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, decl := range f.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Recv == nil {
			names = append(names, fn.Name.Name)
		}
	}
	return names, nil
}

// FuncSource returns the printed source of the top level function name in
// src.
func FuncSource(src, name string) (string, error) {
	fset, f, err := ParseFile(src)
	if err != nil {
		return "", err
	}
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil || fn.Name.Name != name {
			continue
		}
		code := bytes.NewBuffer(nil)
		if err := printer.Fprint(code, fset, fn); err != nil {
			return "", errors.Wrapf(err, "couldn't print code for func %q", name)
		}
		return code.String(), nil
	}
	return "", errors.Errorf("no func %q in generated code", name)
}

// Imports returns the import paths of src.
func Imports(src string) ([]string, error) {
	_, f, err := ParseFile(src)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, spec := range f.Imports {
		paths = append(paths, strings.Trim(spec.Path.Value, `"`))
	}
	return paths, nil
}
