package main

import "jrlgen/cmd"

func main() {
	cmd.Execute()
}
