package main

import "github.com/pivolan/results_analyzer/cmd"

func main() {
	cmd.Execute()
}
