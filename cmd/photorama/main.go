package main

import "github.com/timmy/photorama/internal/cli"

func main() {
	cli.Execute()
}
