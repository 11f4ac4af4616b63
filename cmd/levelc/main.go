// Command levelc checks, inspects and spawns .level.kdl documents.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
