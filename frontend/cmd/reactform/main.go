// Command reactform drives the registration API from the terminal: it
// validates registration forms locally, then talks to the backend and the
// blog service through apiclient.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}
