package main

import "github.com/sambabib/dupcheck/cmd"

func main() {
	cmd.Execute()
}
