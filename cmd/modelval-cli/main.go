package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	modelval "github.com/goliatone/go-modelval"
	"github.com/goliatone/go-modelval/pkg/schema"
)

func main() {
	model := flag.String("model", "", "model definition path or URL (required)")
	rootType := flag.String("root", "", "default validation target type")
	dataPath := flag.String("data", "", "JSON or YAML data file to validate")
	typeName := flag.String("type", "", "target type for validation")
	listTypes := flag.Bool("list-types", false, "print declared types and exit")
	create := flag.String("create", "", "create a default instance of the named type")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	ctx := context.Background()

	if *model == "" {
		log.Fatalf("a -model path or URL is required")
	}

	logger := newLogger(*verbose)
	v := modelval.New(modelval.WithLogger(logger))

	loader := modelval.NewLoader(schema.WithHTTPFallback(10 * time.Second))
	doc, err := loader.Load(ctx, parseSource(*model))
	if err != nil {
		log.Fatalf("Failed to read model definition: %v", err)
	}
	if err := v.LoadModel(ctx, doc.Text(), *rootType); err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}

	switch {
	case *listTypes:
		for _, name := range v.AvailableTypes() {
			fmt.Println(name)
		}
	case *create != "":
		instance := v.CreateInstance(*create)
		if instance == nil {
			log.Fatalf("Could not create instance of %q", *create)
		}
		printJSON(instance)
	case *dataPath != "":
		data, err := readData(*dataPath)
		if err != nil {
			log.Fatalf("Failed to read data file: %v", err)
		}
		target := *typeName
		if target == "" && v.RootType() == "" {
			target = pickType(v.AvailableTypes())
		}
		result := v.ValidateData(ctx, data, target)
		printJSON(result)
		if !result.IsValid {
			os.Exit(1)
		}
	default:
		log.Fatalf("nothing to do: pass -data, -create, or -list-types")
	}
}

// pickType prompts for a validation target when neither -type nor a root type
// is available.
func pickType(types []string) string {
	if len(types) == 0 {
		return ""
	}
	var choice string
	prompt := &survey.Select{
		Message: "Select a type to validate against:",
		Options: types,
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		log.Fatalf("Type selection aborted: %v", err)
	}
	return choice
}

// readData parses a JSON or YAML data file into a plain value tree.
func readData(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var value any
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		if err := yaml.Unmarshal(raw, &value); err != nil {
			return nil, err
		}
		return value, nil
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	return value, nil
}

func printJSON(value any) {
	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
	fmt.Println(string(out))
}

func parseSource(raw string) schema.Source {
	path := strings.TrimSpace(raw)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return schema.SourceFromURL(path)
	}
	return schema.SourceFromFile(path)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
