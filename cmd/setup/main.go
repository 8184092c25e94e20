// setup runs the interactive .env configuration wizard.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lyricflow/lyricflow/internal/envsetup"
)

func main() {
	if !envsetup.NeedsSetup() {
		fmt.Println(".env already exists; delete it to reconfigure.")
		return
	}

	done, err := envsetup.Run()
	if err != nil {
		slog.Error("setup failed", "error", err)
		os.Exit(1)
	}
	if !done {
		fmt.Println("Setup cancelled.")
		os.Exit(1)
	}
	fmt.Println("Configuration written to .env")
}
