package main

import "github.com/Tiliavir/focus-shelf/cmd"

func main() {
	cmd.Execute()
}
