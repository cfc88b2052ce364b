package main

import (
	"os"

	"github.com/pdexec/pdexec/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
