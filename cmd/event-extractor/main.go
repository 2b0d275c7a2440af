package main

import "github.com/pfrederiksen/event-extractor/internal/cli"

func main() {
	cli.Execute()
}
