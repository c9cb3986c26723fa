// Copyright © 2024 The renamebridge authors

package main

import "github.com/swiftclang/renamebridge/cmd"

func main() {
	cmd.Execute()
}
