package main

import "ipsum/internal/cli"

func main() {
	cli.Execute()
}
