package main

import (
	"github.com/mj1618/gergui/cmd"

	// Registers the tcell backend used by `play`.
	_ "github.com/mj1618/gergui/internal/platform/terminal"
)

func main() {
	cmd.Execute()
}
