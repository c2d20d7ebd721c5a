package main

import "github.com/ruthlang/ruth/cmd"

func main() {
	cmd.Execute()
}
