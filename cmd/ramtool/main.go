package main

import "github.com/panyam/ramtool/cmd/ramtool/commands"

func main() {
	commands.Execute()
}
