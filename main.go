package main

import "github.com/gaurav-prasanna/scrollpipe/cmd"

func main() {
	cmd.Execute()
}
