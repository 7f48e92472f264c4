package main

import "github.com/brogergvhs/landingkit/cmd"

func main() {
	cmd.Execute()
}
