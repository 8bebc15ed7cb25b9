package main

import "github.com/willhack/kicanvas/cmd/kicanvas/cmd"

func main() {
	cmd.Execute()
}
