// hypercube - interactive n-dimensional twisty puzzles in the terminal.
package main

import (
	"github.com/SeamusWaldron/hypercube/internal/cli"
)

func main() {
	cli.Execute()
}
