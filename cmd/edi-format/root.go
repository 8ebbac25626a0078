package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/go-edifmt/formatter"
	"github.com/arloliu/go-edifmt/internal/buildinfo"
	"github.com/arloliu/go-edifmt/internal/config"
	"github.com/arloliu/go-edifmt/logger"
	"github.com/arloliu/go-edifmt/writeback"
)

var (
	errMissingPath = errors.New("a path is required unless --stdin is set")
	errPathInStdin = errors.New("a path can't be combined with --stdin")
)

type rootFlags struct {
	stdin         bool
	dryRun        bool
	logLevel      string
	logFormat     string
	configPath    string
	strict        bool
	defaultHeader bool
	crlf          bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "edi-format [path]",
		Short: "Format EDIFACT documents with one segment per line",
		Long: `edi-format reads the UNA service string advice of an EDIFACT document and rewrites
the document with every segment on its own line. The file is replaced atomically and only
when formatting changes it.`,
		Args:         cobra.MaximumNArgs(1),
		Version:      buildinfo.Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, flags)
		},
	}
	cmd.SetVersionTemplate(buildinfo.String() + "\n")

	f := cmd.Flags()
	f.BoolVar(&flags.stdin, "stdin", false, "read the document from stdin and write it to stdout")
	f.BoolVar(&flags.dryRun, "dry-run", false, "print the formatted document instead of rewriting the file")
	f.StringVar(&flags.logLevel, "log-level", "info", "log level: trace, debug, info, warn or error")
	f.StringVar(&flags.logFormat, "log-format", "json", "log format: json or console")
	f.StringVar(&flags.configPath, "config", "", "config file (default: "+config.FileName+" in the working directory)")
	f.BoolVar(&flags.strict, "strict", false, "reject documents whose header doesn't start with UNA")
	f.BoolVar(&flags.defaultHeader, "default-header", false, "insert the default UNA header into documents without one")
	f.BoolVar(&flags.crlf, "crlf", false, "treat carriage returns as line breaks")

	return cmd
}

func run(cmd *cobra.Command, args []string, flags rootFlags) error {
	switch {
	case flags.stdin && len(args) > 0:
		return errPathInStdin
	case !flags.stdin && len(args) == 0:
		return errMissingPath
	}

	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	log := logger.NewSlogWithOptions(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	logger.SetDefault(log)

	if cfg.Path != "" {
		log.Debug("config loaded", "path", cfg.Path)
	}

	opts := append(cfg.FormatterOptions(), formatter.WithLogger(log))

	if flags.stdin {
		_, err := writeback.FormatStream(cmd.InOrStdin(), cmd.OutOrStdout(), opts...)
		return err
	}

	path := args[0]
	if flags.dryRun {
		log.Info("running in dry-run mode")
		_, err := writeback.Preview(path, cmd.OutOrStdout(), opts...)

		return err
	}

	_, err = writeback.FormatFile(path, opts...)

	return err
}

// loadConfig reads the config file and applies the flags set on the command line on top of it.
func loadConfig(cmd *cobra.Command, flags rootFlags) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.Load(flags.configPath)
	} else {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return config.Default(), wdErr
		}
		cfg, err = config.Discover(wd)
	}
	if err != nil {
		return cfg, err
	}

	f := cmd.Flags()
	if f.Changed("log-level") {
		if cfg.LogLevel, err = logger.ParseLevel(flags.logLevel); err != nil {
			return cfg, err
		}
	}
	if f.Changed("log-format") {
		if cfg.LogFormat, err = logger.ParseFormat(flags.logFormat); err != nil {
			return cfg, err
		}
	}
	if f.Changed("strict") {
		cfg.StrictMarker = flags.strict
	}
	if f.Changed("default-header") {
		cfg.DefaultHeader = flags.defaultHeader
	}
	if f.Changed("crlf") {
		cfg.CRLF = flags.crlf
	}

	return cfg, nil
}
