package httpbinding

import (
	"bytes"
	"go/format"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

// Import paths used by generated code.
const (
	ImportBase64      = "encoding/base64"
	ImportBytes       = "bytes"
	ImportContext     = "context"
	ImportJSON        = "encoding/json"
	ImportFmt         = "fmt"
	ImportIO          = "io"
	ImportBig         = "math/big"
	ImportStrings     = "strings"
	ImportTime        = "time"
	ImportSmithy      = "github.com/aws/smithy-go"
	ImportHTTPBinding = "github.com/aws/smithy-go/encoding/httpbinding"
	ImportMiddleware  = "github.com/aws/smithy-go/middleware"
	ImportSmithyTime  = "github.com/aws/smithy-go/time"
	ImportSmithyHTTP  = "github.com/aws/smithy-go/transport/http"
	ImportWirevalue   = "github.com/Unity-Technologies/restbind/wirevalue"
)

// importAliases holds the names generated code refers to packages by when
// they differ from the last path element.
var importAliases = map[string]string{
	ImportSmithyTime: "smithytime",
	ImportSmithyHTTP: "smithyhttp",
}

// Writer accumulates the source of one generated Go file.
type Writer struct {
	pkg     string
	imports map[string]string
	body    bytes.Buffer
}

// NewWriter returns a Writer for a file in package pkg.
func NewWriter(pkg string) *Writer {
	return &Writer{
		pkg:     pkg,
		imports: make(map[string]string),
	}
}

// AddImport records that the file uses path. An alias of "" means the
// package is referred to by its own name.
func (w *Writer) AddImport(path, alias string) {
	if alias == "" {
		alias = importAliases[path]
	}
	w.imports[path] = alias
}

// AddImports records several unaliased imports.
func (w *Writer) AddImports(paths ...string) {
	for _, p := range paths {
		w.AddImport(p, "")
	}
}

// Imports returns the recorded import paths in order.
func (w *Writer) Imports() []string {
	paths := make([]string, 0, len(w.imports))
	for p := range w.imports {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Write appends code followed by a blank line.
func (w *Writer) Write(code string) {
	w.body.WriteString(strings.TrimSpace(code))
	w.body.WriteString("\n\n")
}

// WriteTemplate executes tmpl with data and appends the result.
func (w *Writer) WriteTemplate(name, tmpl string, data interface{}) error {
	code, err := ApplyTemplate(name, tmpl, data, TemplateFuncs)
	if err != nil {
		return err
	}
	w.Write(code)
	return nil
}

// Body returns everything written so far, without package clause or imports.
func (w *Writer) Body() string {
	return w.body.String()
}

// Source returns the complete file: header comment, package clause, imports
// and body.
func (w *Writer) Source() []byte {
	var buf bytes.Buffer
	buf.WriteString("// Code generated by restbind. DO NOT EDIT.\n\n")
	buf.WriteString("package " + w.pkg + "\n\n")
	if len(w.imports) > 0 {
		buf.WriteString("import (\n")
		for _, p := range w.Imports() {
			if alias := w.imports[p]; alias != "" {
				buf.WriteString(alias + " ")
			}
			buf.WriteString(strconv.Quote(p) + "\n")
		}
		buf.WriteString(")\n\n")
	}
	buf.WriteString(w.body.String())
	return buf.Bytes()
}

// TemplateFuncs contains utility functions available within templates.
var TemplateFuncs = template.FuncMap{
	"Quote": strconv.Quote,
}

// ApplyTemplate applies a template with a given name, executor context, and
// function map. Returns the output of the template on success, returns an
// error if template failed to execute.
func ApplyTemplate(name string, tmpl string, executor interface{}, fncs template.FuncMap) (string, error) {
	codeTemplate, err := template.New(name).Funcs(fncs).Parse(tmpl)
	if err != nil {
		return "", errors.Wrapf(err, "cannot parse template %q", name)
	}

	code := bytes.NewBuffer(nil)
	err = codeTemplate.Execute(code, executor)
	if err != nil {
		return "", errors.Wrapf(err, "attempting to execute template %q", name)
	}
	return code.String(), nil
}

// FormatCode takes a string representing some go code and attempts to format
// that code. If formating fails, the original source code is returned.
func FormatCode(code string) string {
	formatted, err := format.Source([]byte(code))
	if err != nil {
		return code
	}
	return string(formatted)
}
