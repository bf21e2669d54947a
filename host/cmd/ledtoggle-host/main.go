package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ledtoggle-host",
	Short: "Host tools for the ledtoggle firmware",
	Long: "Simulate the button/LED toggle loop against in-memory registers, " +
		"or decode telemetry from a board over its serial port.",
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(simCmd, monitorCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
