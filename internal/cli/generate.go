package cli

import (
	"context"
	"fmt"

	"github.com/matzehuels/archdiagram/pkg/diagram"
	"github.com/matzehuels/archdiagram/pkg/diagram/healthcare"
	"github.com/matzehuels/archdiagram/pkg/pipeline"
)

type generateOpts struct {
	output    string
	format    string
	direction string
	from      string
	refresh   bool
}

// runGenerate renders the diagram and prints the summary. Nothing is printed
// to stdout unless the file was written.
func (c *CLI) runGenerate(ctx context.Context, opts generateOpts) error {
	logger := loggerFromContext(ctx)

	d, err := loadDiagram(opts.from, opts.direction)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	spin := startSpinner(ctx, "Rendering "+d.Title()+"...")
	res, err := runner.Execute(ctx, d, pipeline.Options{
		Format:  opts.format,
		Output:  opts.output,
		Refresh: opts.refresh,
	})
	spin.Stop()
	if err != nil {
		return err
	}

	logger.Debug("run complete",
		"run", res.RunID,
		"cached", res.CacheHit,
		"render", res.Stats.RenderTime,
		"write", res.Stats.WriteTime)

	if opts.from == "" {
		printSummary(c.Stdout, healthcare.Summary(res.Path))
	} else {
		printSummary(c.Stdout, declaredSummary(d, res.Path))
	}
	if c.verbose {
		printStats(c.Stdout, res.Stats.NodeCount, res.Stats.EdgeCount, res.Stats.ClusterCount)
		printKeyValue(c.Stdout, "artifact", cacheStatus(res.CacheHit))
	}
	return nil
}

// declaredSummary lists the clusters of a diagram loaded from a file.
func declaredSummary(d *diagram.Diagram, path string) []string {
	lines := []string{
		iconSuccess + " Architecture diagram generated successfully!",
		iconSuccess + " File saved as: " + path,
		"",
		fmt.Sprintf("%s: %d nodes, %d edges", d.Title(), d.NodeCount(), d.EdgeCount()),
	}
	for _, cl := range d.Clusters() {
		lines = append(lines, fmt.Sprintf("- %s: %d components", cl.Label, len(d.NodesInCluster(cl.ID))))
	}
	return lines
}
