package main

import "github.com/stash-cli/stash/cmd"

func main() {
	cmd.Execute()
}
