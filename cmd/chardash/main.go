package main

import (
	"os"

	"chardash/cmd/chardash/cli"
)

var version = "dev"

// Entry point for the application
func main() {
	rootCmd := NewRootCmd()

	// Prepend logo to help message
	helpTemplate := cli.DrawLogo() + "\n\n" + rootCmd.UsageTemplate()
	rootCmd.SetUsageTemplate(helpTemplate)
	rootCmd.SetHelpTemplate(helpTemplate)

	if err := rootCmd.Execute(); err != nil {
		cli.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}
}
