package main

import "github.com/dmitrijs2005/playerprofile/internal/cli"

func main() {
	cli.Execute()
}
