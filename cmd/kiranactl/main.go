package main

import (
	"fmt"
	"os"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
