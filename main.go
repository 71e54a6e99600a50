package main

import "github.com/timjonaswechler/rust-docs-mcp-server/cmd"

func main() {
	cmd.Execute()
}
