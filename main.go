package main

import "github.com/relgate/relgate/cmd"

func main() {
	cmd.Execute()
}
