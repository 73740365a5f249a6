package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/sdksplat/internal/cli"
	"github.com/arthur-debert/sdksplat/pkg/ui/styles"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
