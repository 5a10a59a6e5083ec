// Package cli defines the Cobra command tree for the stencil CLI. The
// commands backed by registry packages are generated from the dispatch
// command table; the rest (cache, config, version) are local. Command
// implementations delegate to internal packages and only handle flags and
// output.
package cli
