// Package generator generates the HTTP binding serializers and deserializers
// of a service model.
package generator

import (
	"bytes"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/tools/imports"

	"github.com/Unity-Technologies/restbind/gengo/httpbinding"
	"github.com/Unity-Technologies/restbind/gengo/restjson"
	"github.com/Unity-Technologies/restbind/restbind"
	"github.com/Unity-Technologies/restbind/shapedef"
)

// Paths of the generated files, relative to the output directory.
const (
	SerializersPath   = "serializers.go"
	DeserializersPath = "deserializers.go"
)

var protocols = map[string]func() httpbinding.Protocol{
	restjson.ProtocolName: func() httpbinding.Protocol { return restjson.New() },
}

// LookupProtocol returns the protocol registered under name.
func LookupProtocol(name string) (httpbinding.Protocol, error) {
	newProtocol, ok := protocols[name]
	if !ok {
		known := make([]string, 0, len(protocols))
		for k := range protocols {
			known = append(known, k)
		}
		sort.Strings(known)
		return nil, errors.Errorf("unknown protocol %q, expected one of %s", name, strings.Join(known, ", "))
	}
	return newProtocol(), nil
}

// Generate returns the serializer and deserializer files of model for
// protocol, keyed by path relative to the output directory.
func Generate(model *shapedef.Model, conf restbind.Config, protocol httpbinding.Protocol) (map[string]io.Reader, error) {
	ctx := &httpbinding.GenerationContext{
		Model:    model,
		Protocol: protocol,
		Symbols: &httpbinding.SymbolProvider{
			TypesImportPath: conf.TypesImportPath,
			TypesPackage:    conf.TypesPackageName,
		},
	}

	ser, err := generateSerializers(ctx, conf.OutputPackage)
	if err != nil {
		return nil, errors.Wrap(err, "cannot generate serializers")
	}
	de, err := generateDeserializers(ctx, conf.OutputPackage)
	if err != nil {
		return nil, errors.Wrap(err, "cannot generate deserializers")
	}

	return map[string]io.Reader{
		SerializersPath:   bytes.NewReader(formatCode(SerializersPath, ser.Source())),
		DeserializersPath: bytes.NewReader(formatCode(DeserializersPath, de.Source())),
	}, nil
}

// generateSerializers writes every operation's request serializers, then
// the document serializers they share.
func generateSerializers(ctx *httpbinding.GenerationContext, pkg string) (*httpbinding.Writer, error) {
	w := httpbinding.NewWriter(pkg)
	seeds, err := httpbinding.GenerateRequestSerializers(ctx, w)
	if err != nil {
		return nil, err
	}
	if err := httpbinding.GenerateSharedSerializerComponents(ctx, w, seeds); err != nil {
		return nil, errors.Wrap(err, "cannot generate document serializers")
	}
	return w, nil
}

// generateDeserializers writes every operation's response deserializers,
// one deserializer per distinct error shape, then the document deserializers
// they share.
func generateDeserializers(ctx *httpbinding.GenerationContext, pkg string) (*httpbinding.Writer, error) {
	w := httpbinding.NewWriter(pkg)
	seeds, errs, err := httpbinding.GenerateResponseDeserializers(ctx, w)
	if err != nil {
		return nil, err
	}
	if err := httpbinding.GenerateErrorDeserializers(ctx, w, errs); err != nil {
		return nil, err
	}
	if err := httpbinding.GenerateSharedDeserializerComponents(ctx, w, seeds); err != nil {
		return nil, errors.Wrap(err, "cannot generate document deserializers")
	}
	return w, nil
}

// formatCode takes golang code and attempts to return a formatted copy with
// unused imports removed. If formatting fails, a warning is logged and the
// original code is returned.
func formatCode(filename string, code []byte) []byte {
	formatted, err := imports.Process(filename, code, &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		log.WithError(err).WithField("file", filename).Warn("Code formatting error, generated code will not build, outputting unformatted code")
		// return code so at least we get something to examine
		return code
	}
	return formatted
}
