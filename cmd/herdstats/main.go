package main

import "github.com/emiliopalmerini/herdstats/internal/cli"

func main() {
	cli.Execute()
}
