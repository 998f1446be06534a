package main

import "github.com/frinky/devlog/cmd"

func main() {
	cmd.Execute()
}
