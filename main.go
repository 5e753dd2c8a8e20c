// Package main is the entry point for the jsprobe CLI.
package main

import "jsprobe.dev/pkg/jsprobe/cmd"

func main() {
	cmd.Execute()
}
