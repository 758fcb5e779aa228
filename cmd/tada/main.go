package main

import "github.com/Makepad-fr/tada-lists/internal/cli"

func main() {
	cli.Main()
}
