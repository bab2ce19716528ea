package main

import "github.com/Irokanade/iro-chess-gui/internal/cli"

func main() {
	cli.Execute()
}
