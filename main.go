package main

import "github.com/xvierd/hourglass/cmd"

func main() {
	cmd.Execute()
}
