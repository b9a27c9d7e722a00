package main

import (
	"fmt"
	"os"

	"goquote/internal/cli"
)

func main() {
	if err := cli.NewRootCmd(cli.Version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
