package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/jpsloader/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
)

// File is the decoded form of a jpsloader.hcl file. Unset attributes stay
// nil so they do not override defaults.
type File struct {
	Workers           *int      `hcl:"workers,optional"`
	LogLevel          *string   `hcl:"log_level,optional"`
	LogFormat         *string   `hcl:"log_format,optional"`
	Extensions        *[]string `hcl:"extensions,optional"`
	LoadTimeout       *string   `hcl:"load_timeout,optional"`
	DocumentCacheSize *int      `hcl:"document_cache_size,optional"`
	EventsURL         *string   `hcl:"events_url,optional"`
	PathVariables     cty.Value `hcl:"path_variables,optional"`
}

// envFunc implements env("NAME"). Unset variables yield "".
var envFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "name", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		return cty.StringVal(os.Getenv(args[0].AsString())), nil
	},
})

func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"env": envFunc,
		},
	}
}

// LoadFile parses and decodes the HCL file at path.
func LoadFile(ctx context.Context, path string) (*File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading configuration file.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var f File
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &f)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}
	return &f, nil
}

// Apply copies the attributes set in f onto cfg.
func (f *File) Apply(cfg *Config) error {
	if f.Workers != nil {
		cfg.Workers = *f.Workers
	}
	if f.LogLevel != nil {
		cfg.LogLevel = *f.LogLevel
	}
	if f.LogFormat != nil {
		cfg.LogFormat = *f.LogFormat
	}
	if f.Extensions != nil {
		cfg.Extensions = append([]string(nil), (*f.Extensions)...)
	}
	if f.LoadTimeout != nil {
		d, err := time.ParseDuration(*f.LoadTimeout)
		if err != nil {
			return fmt.Errorf("invalid load_timeout: %w", err)
		}
		cfg.LoadTimeout = d
	}
	if f.DocumentCacheSize != nil {
		cfg.DocumentCacheSize = *f.DocumentCacheSize
	}
	if f.EventsURL != nil {
		cfg.EventsURL = *f.EventsURL
	}

	vars, err := pathVariables(f.PathVariables)
	if err != nil {
		return err
	}
	if cfg.PathVariables == nil {
		cfg.PathVariables = make(map[string]string, len(vars))
	}
	for k, v := range vars {
		cfg.PathVariables[k] = v
	}
	return nil
}

// pathVariables converts the path_variables object or map into strings.
func pathVariables(v cty.Value) (map[string]string, error) {
	if v == cty.NilVal || v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("path_variables must be known values")
	}
	t := v.Type()
	if !t.IsObjectType() && !t.IsMapType() {
		return nil, fmt.Errorf("path_variables must be an object, got %s", t.FriendlyName())
	}

	out := make(map[string]string)
	for it := v.ElementIterator(); it.Next(); {
		key, val := it.Element()
		s, err := convert.Convert(val, cty.String)
		if err != nil {
			return nil, fmt.Errorf("path variable %s: %w", key.AsString(), err)
		}
		if s.IsNull() {
			return nil, fmt.Errorf("path variable %s is null", key.AsString())
		}
		out[key.AsString()] = s.AsString()
	}
	return out, nil
}
