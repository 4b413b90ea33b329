package main

import "momentum-scout/internal/cli"

func main() {
	cli.Execute()
}
