package main

import "staffq/internal/cli"

func main() {
	cli.Execute()
}
