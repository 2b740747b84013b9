package main

import "github.com/papapumpkin/asperge/cmd"

func main() {
	cmd.Execute()
}
