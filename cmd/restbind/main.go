package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/Unity-Technologies/restbind/gengo/generator"
	"github.com/Unity-Technologies/restbind/restbind"
	"github.com/Unity-Technologies/restbind/shapedef"
)

var (
	configFlag       = flag.StringP("config", "c", "", "YAML file to read configuration from")
	outFlag          = flag.StringP("out", "o", "", "Directory the generated files are written to")
	packageFlag      = flag.String("package", "", "Package name of the generated files")
	typesFlag        = flag.String("types", "", "Import path of the package holding the shape types")
	typesPackageFlag = flag.String("types-package", "", "Name the shape types package is referred to by")
	protocolFlag     = flag.String("protocol", "", "HTTP binding protocol to generate for")
	verboseFlag      = flag.BoolP("verbose", "v", false, "Verbose output")
	helpFlag         = flag.BoolP("help", "h", false, "Print usage")
)

var binName = filepath.Base(os.Args[0])

var (
	// Version is compiled into restbind with the flag
	// go install -ldflags "-X main.Version=$SHA"
	Version string
)

func init() {
	flag.Usage = func() {
		if Version != "" && (*verboseFlag || *helpFlag) {
			fmt.Fprintf(os.Stderr, "%s (version: %s)\n", binName, Version)
		}
		fmt.Fprintf(os.Stderr, "\nUsage: %s [options] <model.json>\n", binName)
		fmt.Fprintf(os.Stderr, "\nGenerates HTTP binding serializers and deserializers from a Smithy JSON AST.\n")
		fmt.Fprintf(os.Stderr, "Options may also be set with %s* environment variables.\n", restbind.EnvPrefix)
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	cfg, err := parseInput()
	exitIfError(errors.Wrap(err, "cannot parse input"))

	log.SetLevel(log.InfoLevel)
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	log.WithField("Model", cfg.ModelPath).Debug()
	log.WithField("Output", cfg.OutputDir).Debug()

	model, err := loadModel(cfg.ModelPath)
	exitIfError(errors.Wrap(err, "cannot load model"))

	protocol, err := generator.LookupProtocol(cfg.Protocol)
	exitIfError(err)

	genFiles, err := generator.Generate(model, cfg, protocol)
	exitIfError(errors.Wrap(err, "cannot generate http bindings"))

	for path, file := range genFiles {
		err := writeGenFile(file, filepath.Join(cfg.OutputDir, path))
		exitIfError(errors.Wrap(err, "cannot write output"))
	}
}

// parseInput layers flags and the positional model argument over the
// environment, the config file and the defaults.
func parseInput() (restbind.Config, error) {
	cfg, err := restbind.Load(*configFlag)
	if err != nil {
		return restbind.Config{}, err
	}

	if len(flag.Args()) > 1 {
		return restbind.Config{}, errors.Errorf("expected one model file, got %d", len(flag.Args()))
	}
	if len(flag.Args()) == 1 {
		cfg.ModelPath = flag.Arg(0)
	}

	overrides := []struct {
		name string
		dst  *string
		val  string
	}{
		{"out", &cfg.OutputDir, *outFlag},
		{"package", &cfg.OutputPackage, *packageFlag},
		{"types", &cfg.TypesImportPath, *typesFlag},
		{"types-package", &cfg.TypesPackageName, *typesPackageFlag},
		{"protocol", &cfg.Protocol, *protocolFlag},
	}
	for _, o := range overrides {
		if flag.CommandLine.Changed(o.name) {
			*o.dst = o.val
		}
	}
	if flag.CommandLine.Changed("verbose") {
		cfg.Verbose = *verboseFlag
	}

	if err := cfg.Validate(); err != nil {
		return restbind.Config{}, err
	}
	return cfg, nil
}

func loadModel(path string) (*shapedef.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open model %q", path)
	}
	defer f.Close()
	return shapedef.Load(f)
}

// writeGenFile writes a file at path to the filesystem
func writeGenFile(file io.Reader, path string) error {
	err := os.MkdirAll(filepath.Dir(path), 0777)
	if err != nil {
		return err
	}

	outFile, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create file %v", path)
	}

	_, err = io.Copy(outFile, file)
	if err != nil {
		outFile.Close()
		return errors.Wrapf(err, "cannot write to %v", path)
	}
	return outFile.Close()
}

// exitIfError will print the error message and exit 1 if the passed error is
// non-nil
func exitIfError(err error) {
	if errors.Cause(err) != nil {
		defer os.Exit(1)
		if *verboseFlag {
			fmt.Printf("%+v\n", err)
			return
		}
		fmt.Printf("%v\n", err)
	}
}
