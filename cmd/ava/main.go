package main

import (
	"os"

	"github.com/avafoundry/ava-cli/internal/app"
)

func main() {
	runner := app.NewRunner()
	os.Exit(runner.Run(os.Args[1:]))
}
