// pigment - a colour palette generator
//
// pigment generates harmonious palettes from harmony rules, themed recipes
// and randomized strategies, and extracts representative palettes from
// images.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/jmylchreest/pigment/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
