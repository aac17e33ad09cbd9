package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vk/jpsloader/internal/app"
	"github.com/vk/jpsloader/internal/config"
)

// options holds the persistent flags and the configuration resolved from
// them before a subcommand runs.
type options struct {
	configFile string
	workers    int
	logLevel   string
	logFormat  string
	extensions []string
	timeout    time.Duration
	eventsURL  string
	cacheSize  int
	pathVars   []string
	output     string

	cfg *config.Config
}

// Execute runs the command line in args. Output goes to outW, logs to errW.
// A non-nil error is always an *ExitError.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		return toExitError(err)
	}
	return nil
}

// NewRootCommand builds the jpsloader command tree.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	o := &options{}
	def := config.Default()

	root := &cobra.Command{
		Use:   "jpsloader",
		Short: "Load IntelliJ IDEA project models",
		Long: `jpsloader reads IntelliJ IDEA project configuration (.idea directories or
.ipr files together with their .iml module descriptors) into an in-memory
project model. Modules are parsed concurrently on a shared worker pool and
attached in the order the project declares them.

Settings may come from an HCL file given with --config; flags override it.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.resolveConfig(cmd)
			if err != nil {
				return usageError(err)
			}
			o.cfg = cfg
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := root.PersistentFlags()
	flags.StringVarP(&o.configFile, "config", "c", "", "path to an HCL configuration file")
	flags.IntVarP(&o.workers, "workers", "w", def.Workers, "worker pool size, 0 for one per CPU")
	flags.StringVar(&o.logLevel, "log-level", def.LogLevel, "log level: debug, info, warn or error")
	flags.StringVar(&o.logFormat, "log-format", def.LogFormat, "log format: text or json")
	flags.StringSliceVar(&o.extensions, "extensions", nil, "bundled extensions to install (default all)")
	flags.DurationVar(&o.timeout, "timeout", def.LoadTimeout, "per-project load timeout, 0 for none")
	flags.StringVar(&o.eventsURL, "events-url", "", "socket.io endpoint receiving progress events")
	flags.IntVar(&o.cacheSize, "cache-size", def.DocumentCacheSize, "parsed document cache size, 0 to disable")
	flags.StringArrayVar(&o.pathVars, "path-var", nil, "path variable as KEY=VALUE, repeatable")
	flags.StringVarP(&o.output, "output", "o", "text", "output format: text, json or yaml")

	root.AddCommand(
		newLoadCommand(o),
		newModulesCommand(o),
		newClasspathCommand(o),
		newExtensionsCommand(o),
	)
	return root
}

// resolveConfig layers the configuration file and the changed flags over
// the defaults and validates the result.
func (o *options) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	switch o.output {
	case "text", "json", "yaml":
	default:
		return nil, fmt.Errorf("invalid output %q: must be 'text', 'json' or 'yaml'", o.output)
	}

	cfg := config.Default()
	if o.configFile != "" {
		f, err := config.LoadFile(cmd.Context(), o.configFile)
		if err != nil {
			return nil, err
		}
		if err := f.Apply(&cfg); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	if flags.Changed("extensions") {
		cfg.Extensions = o.extensions
	}
	if flags.Changed("timeout") {
		cfg.LoadTimeout = o.timeout
	}
	if flags.Changed("events-url") {
		cfg.EventsURL = o.eventsURL
	}
	if flags.Changed("cache-size") {
		cfg.DocumentCacheSize = o.cacheSize
	}
	for _, kv := range o.pathVars {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --path-var %q: want KEY=VALUE", kv)
		}
		cfg.PathVariables[name] = value
	}

	return config.NewConfig(cfg)
}

// newApp builds an App logging to the command's error stream.
func (o *options) newApp(cmd *cobra.Command) (*app.App, error) {
	a, err := app.NewApp(cmd.ErrOrStderr(), o.cfg)
	if err != nil {
		return nil, usageError(err)
	}
	return a, nil
}
