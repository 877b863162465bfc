// Command cloak hides passphrase-protected messages in images and WAV files.
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	app := newApp(&runner{prompt: promptPassphrase})
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "cloak: %v\n", err)
		os.Exit(1)
	}
}
