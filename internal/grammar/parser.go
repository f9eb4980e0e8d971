package grammar

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/karupanerura/exprtree/internal/syntax"
	"github.com/mitchellh/mapstructure"
)

type operatorTableDef struct {
	Unary  map[string]int `json:"unary" mapstructure:"unary"`
	Binary map[string]int `json:"binary" mapstructure:"binary"`
}

// Load reads an operator table from a .yaml, .yml or .json file.
func Load(filePath string) (*syntax.OperatorTable, error) {
	var parse func(io.Reader) (*syntax.OperatorTable, error)
	switch filepath.Ext(filePath) {
	case ".json":
		parse = ParseJSON
	case ".yaml", ".yml":
		parse = ParseYAML
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%q): %w", filePath, err)
	}
	defer f.Close()

	table, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return table, nil
}

func ParseYAML(r io.Reader) (*syntax.OperatorTable, error) {
	yamlBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}

	jsonBytes, err := yaml.YAMLToJSON(yamlBytes)
	if err != nil {
		return nil, fmt.Errorf("yaml.YAMLToJSON: %w", err)
	}

	return ParseJSON(bytes.NewReader(jsonBytes))
}

func ParseJSON(r io.Reader) (*syntax.OperatorTable, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("json.Decode: %w", err)
	}

	return Decode(raw)
}

// Decode builds an operator table from a generic map such as a decoded request body:
//
//	{"unary": {"-": 6}, "binary": {"+": 4, "StarToken": 5}}
//
// Operators are named by spelling or by kind name. Precedences must be positive.
func Decode(raw map[string]any) (*syntax.OperatorTable, error) {
	var def operatorTableDef
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &def,
	})
	if err != nil {
		return nil, fmt.Errorf("mapstructure.NewDecoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("mapstructure.Decode: %w", err)
	}

	return def.compile()
}

func (d *operatorTableDef) compile() (*syntax.OperatorTable, error) {
	if len(d.Unary) == 0 && len(d.Binary) == 0 {
		return nil, fmt.Errorf("operator table is empty")
	}

	unary, err := compileTable(d.Unary)
	if err != nil {
		return nil, fmt.Errorf("unary: %w", err)
	}
	binary, err := compileTable(d.Binary)
	if err != nil {
		return nil, fmt.Errorf("binary: %w", err)
	}

	table := &syntax.OperatorTable{Unary: unary, Binary: binary}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

func compileTable(def map[string]int) (map[syntax.Kind]int, error) {
	table := make(map[syntax.Kind]int, len(def))
	for name, prec := range def {
		kind, ok := syntax.LookupKind(name)
		if !ok || !kind.IsOperatorCandidate() {
			return nil, fmt.Errorf("unknown operator %q", name)
		}
		if prec <= 0 {
			return nil, fmt.Errorf("operator %q: precedence must be positive but got %d", name, prec)
		}
		if _, dup := table[kind]; dup {
			return nil, fmt.Errorf("operator %q: defined twice", name)
		}
		table[kind] = prec
	}
	return table, nil
}
