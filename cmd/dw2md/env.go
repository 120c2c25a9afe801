package main

import (
	"io"
	"os"
)

// Environment groups the process-level dependencies of the CLI so tests
// can substitute writers and observe output.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
