package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/toolbars/cmd/toolbars"
	"github.com/arthur-debert/toolbars/pkg/output"
	"github.com/charmbracelet/lipgloss"
)

func main() {
	rootCmd := toolbars.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := output.DefaultStyles(lipgloss.NewRenderer(os.Stderr)).Get("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
