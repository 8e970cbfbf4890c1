package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"navcheck/presentation/terminal"
)

var version = "0.1.0"

func main() {
	if err := godotenv.Load(); err != nil {
		// .env file is optional
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Warning: failed to read .env: %v\n", err)
		}
	}

	term := terminal.NewTerminalInterface(os.Getenv, nil, os.Stdout, os.Stderr)
	if err := term.App(version).Run(os.Args); err != nil {
		if !errors.Is(err, terminal.ErrSuiteFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
