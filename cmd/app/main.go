package main

import (
	"os"

	"github.com/kallejre/quick-gps-bookmark/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
