package main

import (
	"context"
	"fmt"
	"os"

	"github.com/iudanet/commentfeed/internal/client/cli"
	"github.com/iudanet/commentfeed/internal/client/iocli"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	app := cli.New(iocli.NewStdio(), os.Stderr, cli.BuildInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
	})

	if err := app.Execute(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
