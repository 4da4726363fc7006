package main

import (
	"github.com/civita-labs/civita-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
