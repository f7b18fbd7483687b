package main

import (
	"fmt"
	"os"

	"github.com/idilsaglam/todolist/internal/cli"
)

func main() {
	code := cli.Run(os.Args[1:], os.Stdout, os.Stderr, cli.Options{})
	if code != cli.ExitOK {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
