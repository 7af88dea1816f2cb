package main

import (
	cmd "github.com/toolwarden/cli/cmd"
)

func main() {
	cmd.Execute()
}
