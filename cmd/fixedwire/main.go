package main

import "github.com/ssargent/fixedwire/cmd/fixedwire/cmd"

func main() {
	cmd.Execute()
}
