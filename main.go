package main

import "github.com/tmorrow/highroad/cmd"

func main() {
	cmd.Execute()
}
