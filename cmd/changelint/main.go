package main

import (
	"os"

	"github.com/ariel-frischer/changelint/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
