package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/justyntemme/quickdeck/internal/app"
	"github.com/justyntemme/quickdeck/internal/config"
)

func main() {
	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	generate := flag.Bool("generate-config", false, "Write a default config file and exit")
	importPath := flag.String("import", "", "Folder to import onto the deck on startup (accepts a PATH-style list)")
	flag.Parse()

	if *generate {
		backup, err := config.GenerateConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "generate config: %v\n", err)
			os.Exit(1)
		}
		if backup != "" {
			fmt.Printf("Existing config backed up to %s\n", backup)
		}
		fmt.Printf("Wrote %s\n", config.ConfigPath())
		return
	}

	// Handle OS-specific console visibility
	manageConsole(*debug)

	app.Main(*debug, *importPath)
}
