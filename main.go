// The main package for the headlinecrawler executable.
package main

import (
	"github.com/newsburst/headline-crawler/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
