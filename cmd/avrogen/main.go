// Command avrogen converts Go structs and descriptor documents into Avro record schemas.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tencent-go/avrogen/cmd/avrogen/commands"
	"github.com/tencent-go/avrogen/shutdown"
)

func main() {
	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()
	if err := commands.NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, commands.Report(err))
		os.Exit(1)
	}
}
