package main

import "punch.cli/cmd"

func main() {
	cmd.Execute()
}
