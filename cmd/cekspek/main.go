package main

import "github.com/quochao170402/cekspek/cmd/cekspek/commands"

func main() {
	commands.Execute()
}
