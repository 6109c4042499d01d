// Package pkg holds the libraries behind archdiagram.
//
// A run flows through the packages in this order:
//
//	[diagram] / [diagram/healthcare]   declare nodes, clusters and edges
//	         ↓
//	[render]                           emit Graphviz DOT, lay out and draw it
//	         ↓
//	[pipeline]                         cache the artifact and write the file
//
// Supporting packages:
//
//   - [io]: JSON, YAML and TOML declaration files
//   - [cache]: file, Redis and no-op artifact caches
//   - [errors]: coded errors shared by every layer
//   - [observability]: optional render and cache hooks
//   - [buildinfo]: version stamped at link time
//
// # Quick Start
//
//	d, err := healthcare.Architecture()
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil)
//	res, err := runner.Execute(ctx, d, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	for _, line := range healthcare.Summary(res.Path) {
//	    fmt.Println(line)
//	}
package pkg
