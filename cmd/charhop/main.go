package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charhop/charhop"
)

func main() {
	var cli charhop.CLI
	if err := cli.Run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
