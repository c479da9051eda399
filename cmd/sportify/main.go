package main

import "github.com/pfrederiksen/sportify/internal/cli"

func main() {
	cli.Execute()
}
