package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/archdiagram/pkg/buildinfo"
	"github.com/matzehuels/archdiagram/pkg/cache"
	"github.com/matzehuels/archdiagram/pkg/diagram"
	"github.com/matzehuels/archdiagram/pkg/diagram/healthcare"
	apperrors "github.com/matzehuels/archdiagram/pkg/errors"
	archio "github.com/matzehuels/archdiagram/pkg/io"
	"github.com/matzehuels/archdiagram/pkg/pipeline"
)

// appName names the binary and the cache directory.
const appName = "archdiagram"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger
	Stdout io.Writer

	verbose  bool
	useCache bool
	cacheURL string
}

// New returns a CLI logging to w at level and printing results to os.Stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Stdout: os.Stdout,
	}
}

// RootCommand builds the command tree. Invoked without a subcommand it
// renders a diagram.
func (c *CLI) RootCommand() *cobra.Command {
	var opts generateOpts

	root := &cobra.Command{
		Use:   appName,
		Short: "Render the Healthcare AI Assistant cloud architecture diagram",
		Long: `archdiagram declares the cloud architecture of the Healthcare AI Assistant
(CDN, API gateway, serverless functions, AI services, data stores and
monitoring) and renders it with Graphviz.

With no arguments it writes generated-diagrams/healthcare-ai-architecture.png.
The output directory must already exist.`,
		Args:          cobra.NoArgs,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.Logger.SetLevel(LogDebug)
				registerLogHooks(c.Logger)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), opts)
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	pf.BoolVar(&c.useCache, "cache", false, "cache rendered artifacts under $XDG_CACHE_HOME/"+appName)
	pf.StringVar(&c.cacheURL, "cache-url", "", "redis:// URL of a shared artifact cache")

	f := root.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file (default: <filename>.<format> from the declaration)")
	f.StringVarP(&opts.format, "format", "f", "", "output format: dot, jpg, pdf, png (default), svg")
	f.StringVar(&opts.direction, "direction", "", "layout direction: LR (default), RL, TB, BT")
	f.StringVar(&opts.from, "from", "", "declaration file (.json, .yaml, .toml) instead of the built-in diagram")
	f.BoolVar(&opts.refresh, "refresh", false, "re-render even when a cached artifact exists")

	root.AddCommand(c.exportCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadDiagram returns the declaration in from, or the built-in architecture
// when from is empty, with an optional direction override applied.
func loadDiagram(from, direction string) (*diagram.Diagram, error) {
	var (
		d   *diagram.Diagram
		err error
	)
	if from != "" {
		d, err = archio.Import(from)
	} else {
		d, err = healthcare.Architecture()
	}
	if err != nil {
		return nil, err
	}
	if direction != "" {
		if err := d.SetDirection(diagram.Direction(strings.ToUpper(direction))); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "--direction")
		}
	}
	return d, nil
}

func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, c.Logger), nil
}

// newCache returns the cache selected by --cache-url or --cache. Without
// either, nothing but the diagram itself is written.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.cacheURL != "" {
		cache.SetRedisLogger(c.Logger)
		rc, err := cache.NewRedisCache(ctx, c.cacheURL)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeCache, err, "connect to cache")
		}
		return rc, nil
	}
	if !c.useCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "dir", dir, "error", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// cacheDir returns $XDG_CACHE_HOME/archdiagram, or ~/.cache/archdiagram.
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
