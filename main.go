package main

import "github.com/simplereplay/replay/cmd"

func main() {
	cmd.Execute()
}
