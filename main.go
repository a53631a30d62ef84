package main

import "github.com/dmose/bpblog/cmd"

func main() {
	cmd.Execute()
}
