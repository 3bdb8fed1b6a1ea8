// ABOUTME: Entry point for fitness CLI.
// ABOUTME: Invokes the root Cobra command.
package main

import (
	"fmt"
	"os"
)

func main() {
	err := rootCmd.Execute()
	// PersistentPostRunE is skipped when a command fails
	_ = closeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
