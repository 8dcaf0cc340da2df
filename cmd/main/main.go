package main

import "github.com/tunebridge/tunebridge/cmd"

func main() {
	cmd.Execute()
}
