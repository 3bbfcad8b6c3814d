// ctbs - accessible Bootstrap themes from images
//
// ctbs extracts a colour palette from an image and generates Bootstrap 5
// CSS variables whose text colours meet WCAG AAA contrast.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/ctbs/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
