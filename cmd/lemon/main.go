package main

import "github.com/birendpatel/lemon/pkg/cmd"

func main() {
	cmd.Execute()
}
