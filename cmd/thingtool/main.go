// Package main implements the thingtool CLI for validating and
// round-tripping thing XML files.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gohealth/itemtypes"
	"github.com/gohealth/itemtypes/engine"
	_ "github.com/gohealth/itemtypes/types"
	"github.com/gohealth/itemtypes/vocab"
)

const (
	version = "0.1.0"
	usage   = `thingtool - health thing XML validator

Usage:
  thingtool [options] <file>...
  thingtool [options] -          (read from stdin)
  cat height.xml | thingtool -   (pipe input)

Examples:
  thingtool height.xml
  thingtool -roundtrip height.xml
  thingtool -output json *.xml
  thingtool -vocab ./vocabularies -strict weight.xml
  cat thing.xml | thingtool -

Options:
`
)

// OutputFormat specifies the output format.
type OutputFormat string

// Output format constants.
const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

// Config holds CLI configuration.
type Config struct {
	Roundtrip   bool
	Indent      bool
	VocabDir    string
	Builtin     bool
	Strict      bool
	NoRanges    bool
	MaxErrors   int
	Output      OutputFormat
	Quiet       bool
	Verbose     bool
	ShowVersion bool
	Help        bool
	Files       []string
}

// FileOutput is the per-file JSON output record.
type FileOutput struct {
	File     string        `json:"file"`
	TypeName string        `json:"typeName,omitempty"`
	Valid    bool          `json:"valid"`
	Errors   int           `json:"errors"`
	Warnings int           `json:"warnings"`
	Issues   []IssueOutput `json:"issues,omitempty"`
	Output   string        `json:"output,omitempty"`
	Duration string        `json:"duration"`
}

// IssueOutput is one finding in JSON output.
type IssueOutput struct {
	Severity    string `json:"severity"`
	Code        string `json:"code"`
	Diagnostics string `json:"diagnostics"`
	Path        string `json:"path,omitempty"`
}

func main() {
	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("thingtool v%s\n", version)
		os.Exit(0)
	}

	if config.Help || len(config.Files) == 0 {
		flag.Usage()
		os.Exit(0)
	}

	os.Exit(run(config))
}

func parseFlags() *Config {
	config := &Config{Output: OutputText}

	var output string

	flag.BoolVar(&config.Roundtrip, "roundtrip", false, "Re-encode each decoded file and print the canonical XML")
	flag.BoolVar(&config.Indent, "indent", false, "Indent round-trip output")
	flag.StringVar(&config.VocabDir, "vocab", "", "Directory of vocabulary JSON files to check coded values against")
	flag.BoolVar(&config.Builtin, "builtin-vocab", false, "Check coded values against the built-in vocabularies")
	flag.BoolVar(&config.Strict, "strict", false, "Treat unknown vocabulary codes as errors")
	flag.BoolVar(&config.NoRanges, "no-ranges", false, "Report out-of-range values as warnings")
	flag.IntVar(&config.MaxErrors, "max-errors", 0, "Stop recording errors after this many (0 = unlimited)")
	flag.StringVar(&output, "output", "text", "Output format: text, json")
	flag.BoolVar(&config.Quiet, "quiet", false, "Only show errors and warnings")
	flag.BoolVar(&config.Verbose, "verbose", false, "Show debug logging")
	flag.BoolVar(&config.ShowVersion, "v", false, "Show version")
	flag.BoolVar(&config.Help, "help", false, "Show help")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}

	flag.Parse()

	if strings.EqualFold(output, "json") {
		config.Output = OutputJSON
	}

	config.Files = flag.Args()
	return config
}

func run(config *Config) int {
	ctx := context.Background()

	codec, err := buildCodec(ctx, config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer codec.Close()

	hasErrors := false
	outputs := make([]FileOutput, 0, len(config.Files))

	for _, file := range config.Files {
		if file == "-" {
			data, readErr := io.ReadAll(os.Stdin)
			if readErr != nil {
				fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", readErr)
				hasErrors = true
				continue
			}
			out, fileHasErrors := processData(ctx, codec, data, "stdin", config)
			outputs = append(outputs, out)
			if fileHasErrors {
				hasErrors = true
			}
			continue
		}

		matches, globErr := filepath.Glob(file)
		if globErr != nil {
			fmt.Fprintf(os.Stderr, "Error with pattern '%s': %v\n", file, globErr)
			hasErrors = true
			continue
		}
		if len(matches) == 0 {
			fmt.Fprintf(os.Stderr, "No files match pattern: %s\n", file)
			hasErrors = true
			continue
		}

		for _, match := range matches {
			out, fileHasErrors := processFile(ctx, codec, match, config)
			outputs = append(outputs, out)
			if fileHasErrors {
				hasErrors = true
			}
		}
	}

	if config.Output == OutputJSON {
		jsonOutput, _ := json.MarshalIndent(outputs, "", "  ")
		fmt.Println(string(jsonOutput))
	}

	if hasErrors {
		return 1
	}
	return 0
}

func buildCodec(ctx context.Context, config *Config) (*engine.Codec, error) {
	opts := []itemtypes.Option{
		itemtypes.WithIndent(config.Indent),
		itemtypes.WithRangeChecks(!config.NoRanges),
		itemtypes.WithMaxErrors(config.MaxErrors),
	}
	if config.Strict {
		opts = append(opts, itemtypes.WithStrictVocabulary(true))
	}

	codec, err := engine.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	if config.Verbose {
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
		codec.UseLogger(log)
	}

	svc, err := buildVocabulary(config)
	if err != nil {
		return nil, err
	}
	if svc != nil {
		codec.UseVocabulary(svc)
	}
	return codec, nil
}

func buildVocabulary(config *Config) (vocab.Service, error) {
	chain := vocab.NewChain()
	loaded := false

	if config.VocabDir != "" {
		m := vocab.NewMemory()
		if err := m.LoadDir(config.VocabDir); err != nil {
			return nil, fmt.Errorf("loading vocabularies from %s: %w", config.VocabDir, err)
		}
		chain.Add(m)
		loaded = true
	}
	if config.Builtin {
		m, err := vocab.NewBuiltin()
		if err != nil {
			return nil, err
		}
		chain.Add(m)
		loaded = true
	}

	if !loaded {
		return nil, nil
	}
	return chain, nil
}

func processFile(ctx context.Context, codec *engine.Codec, path string, config *Config) (FileOutput, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		out := FileOutput{
			File:   path,
			Valid:  false,
			Errors: 1,
			Issues: []IssueOutput{{
				Severity:    "error",
				Code:        "processing",
				Diagnostics: fmt.Sprintf("failed to read file: %v", err),
			}},
		}
		if config.Output == OutputText {
			fmt.Printf("Error reading %s: %v\n", path, err)
		}
		return out, true
	}

	return processData(ctx, codec, data, path, config)
}

func processData(ctx context.Context, codec *engine.Codec, data []byte, name string, config *Config) (FileOutput, bool) {
	start := time.Now()

	var result *itemtypes.Result
	var encoded []byte

	if config.Roundtrip {
		var err error
		encoded, result, err = codec.Roundtrip(ctx, data)
		if err != nil {
			result.Release()
			out := FileOutput{
				File:   name,
				Valid:  false,
				Errors: 1,
				Issues: []IssueOutput{{
					Severity:    "error",
					Code:        "processing",
					Diagnostics: fmt.Sprintf("re-encode failed: %v", err),
				}},
			}
			if config.Output == OutputText {
				fmt.Printf("Error re-encoding %s: %v\n", name, err)
			}
			return out, true
		}
	} else {
		result = codec.Validate(ctx, data)
	}
	defer result.Release()

	duration := time.Since(start)

	out := FileOutput{
		File:     name,
		TypeName: result.TypeName,
		Valid:    result.Valid,
		Errors:   result.ErrorCount(),
		Warnings: len(result.Warnings()),
		Output:   string(encoded),
		Duration: duration.Round(time.Microsecond).String(),
	}
	for _, iss := range result.Issues {
		out.Issues = append(out.Issues, IssueOutput{
			Severity:    string(iss.Severity),
			Code:        string(iss.Code),
			Diagnostics: iss.Diagnostics,
			Path:        iss.Path,
		})
	}

	if config.Output == OutputText {
		printTextResult(name, result, encoded, duration, config)
	}

	return out, result.HasErrors()
}

func printTextResult(name string, result *itemtypes.Result, encoded []byte, duration time.Duration, config *Config) {
	status := "VALID"
	if result.HasErrors() {
		status = "INVALID"
	}

	fmt.Printf("== %s ==\n", name)
	if result.TypeName != "" {
		fmt.Printf("Type: %s\n", result.TypeName)
	}
	fmt.Printf("Status: %s\n", status)
	fmt.Printf("Errors: %d, Warnings: %d\n", result.ErrorCount(), len(result.Warnings()))
	if !config.Quiet {
		fmt.Printf("Duration: %s\n", duration.Round(time.Microsecond))
	}

	if result.IssueCount() > 0 {
		fmt.Println("\nIssues:")
		for _, iss := range result.Issues {
			location := ""
			if iss.Path != "" {
				location = " @ " + iss.Path
			}
			fmt.Printf("  %s [%s] %s%s\n", severityTag(iss.Severity), iss.Code, iss.Diagnostics, location)
		}
	}

	if len(encoded) > 0 && !result.HasErrors() {
		fmt.Printf("\n%s\n", encoded)
	}
	fmt.Println()
}

func severityTag(severity itemtypes.IssueSeverity) string {
	switch severity {
	case itemtypes.SeverityFatal, itemtypes.SeverityError:
		return "ERROR"
	case itemtypes.SeverityWarning:
		return "WARN "
	case itemtypes.SeverityInformation:
		return "INFO "
	default:
		return "     "
	}
}
