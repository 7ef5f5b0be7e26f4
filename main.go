package main

import "github.com/radiofrance/strargs/cmd"

func main() {
	cmd.Execute()
}
