package main

import (
	"os"

	"dropsort/internal/commands"
)

func main() {
	os.Exit(commands.Run(os.Args))
}
