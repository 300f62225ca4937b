package main

import "github.com/naka-gawa/github-activity/cmd"

func main() {
	cmd.Execute()
}
