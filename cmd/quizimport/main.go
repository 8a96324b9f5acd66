// Package main provides the quizimport CLI.
package main

import "github.com/mesh-intelligence/quizimport/internal/cli"

func main() {
	cli.Execute()
}
