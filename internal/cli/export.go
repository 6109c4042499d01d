package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archdiagram/pkg/diagram"
	apperrors "github.com/matzehuels/archdiagram/pkg/errors"
	archio "github.com/matzehuels/archdiagram/pkg/io"
	"github.com/matzehuels/archdiagram/pkg/render"
)

// Export formats beyond the declaration codecs.
const (
	exportDOT     = "dot"
	exportMermaid = "mermaid"
)

type exportOpts struct {
	format    string
	output    string
	from      string
	direction string
}

func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the diagram declaration as dot, mermaid, json, yaml or toml",
		Long: `Export writes the declaration in another format without rendering it.

The format defaults to the output file's extension (.dot, .gv, .mmd, .json,
.yaml, .yml, .toml), or json when writing to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "export format: dot, mermaid, json, yaml, toml")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.from, "from", "", "declaration file instead of the built-in diagram")
	cmd.Flags().StringVar(&opts.direction, "direction", "", "layout direction override")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, opts exportOpts) error {
	prog := newProgress(loggerFromContext(ctx))

	format, err := exportFormat(opts.format, opts.output)
	if err != nil {
		return err
	}
	d, err := loadDiagram(opts.from, opts.direction)
	if err != nil {
		return err
	}

	if opts.output == "" {
		var buf bytes.Buffer
		if err := encode(&buf, d, format); err != nil {
			return err
		}
		_, err := c.Stdout.Write(buf.Bytes())
		return err
	}
	if err := writeExport(d, opts.output, format); err != nil {
		return err
	}
	prog.done("Exported " + format)
	printSuccess(c.Stdout, "Exported %s", format)
	printFile(c.Stdout, opts.output)
	return nil
}

// exportFormat resolves the --format flag, falling back to the output extension.
func exportFormat(format, output string) (string, error) {
	format = strings.ToLower(format)
	if format == "" {
		switch strings.ToLower(filepath.Ext(output)) {
		case "":
			return archio.FormatJSON, nil
		case ".dot", ".gv":
			return exportDOT, nil
		case ".mmd":
			return exportMermaid, nil
		}
		return archio.FormatFromPath(output)
	}
	switch format {
	case exportDOT, exportMermaid, archio.FormatJSON, archio.FormatYAML, archio.FormatTOML:
		return format, nil
	case "yml":
		return archio.FormatYAML, nil
	}
	return "", apperrors.New(apperrors.ErrCodeInvalidFormat,
		"unsupported export format %q (use dot, mermaid, json, yaml or toml)", format)
}

// writeExport writes d to path. Declaration formats go through the codec's
// own file export; dot and mermaid are rendered here.
func writeExport(d *diagram.Diagram, path, format string) error {
	switch format {
	case exportDOT, exportMermaid:
		var buf bytes.Buffer
		if err := encode(&buf, d, format); err != nil {
			return err
		}
		return render.WriteFile(path, buf.Bytes())
	}
	return archio.Export(d, path, format)
}

func encode(buf *bytes.Buffer, d *diagram.Diagram, format string) error {
	switch format {
	case exportDOT:
		buf.WriteString(render.ToDOT(d))
		return nil
	case exportMermaid:
		buf.WriteString(render.ToMermaid(d))
		return nil
	}
	return archio.Write(d, buf, format)
}
