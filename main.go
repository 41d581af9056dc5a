package main

import "github.com/evoai/commerce-agent/internal/cli"

func main() {
	cli.Execute()
}
