// Command relaxctl drives the stencil relaxation engine: a single
// configured benchmark via `run`, or the built-in thread-count sweep
// via `sweep`.
package main

import "github.com/relaxmesh/stencil/cmd/relaxctl/cmd"

func main() {
	cmd.Execute()
}
