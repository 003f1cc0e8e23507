package main

import "debdepot/internal/cli"

func main() {
	cli.Execute()
}
