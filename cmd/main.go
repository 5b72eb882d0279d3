package main

import "navident-console/internal/cli"

func main() {
	cli.Execute()
}
