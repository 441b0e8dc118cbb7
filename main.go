package main

import "github.com/gaurav-prasanna/bbpipe/cmd"

func main() {
	cmd.Execute()
}
