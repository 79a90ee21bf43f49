// Scenebrush CLI - AI image generation for rendered scenes.
package main

import (
	"os"

	"github.com/scenebrush/scenebrush/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
