package main

import (
	"fmt"
	"os"
)

type logger bool

func (l logger) Logf(format string, a ...interface{}) {
	if !l {
		return
	}
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprintln(os.Stderr, "")
}

// Warnf prints regardless of verbosity
func (l logger) Warnf(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, "warning: "+format, a...)
	fmt.Fprintln(os.Stderr, "")
}

// exit codes
const (
	exitInvalidFlags = 1
	exitConfig       = 2
	exitBackend      = 3
	exitOperation    = 4
	exitOutput       = 5
	exitInvalidRules = 6
)

func fail(code int, err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(code)
}
