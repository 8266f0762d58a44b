package main

import "github.com/agentic-research/lumiere/cmd"

func main() {
	cmd.Execute()
}
