package main

import "portfolio_backend/internal/cli"

func main() {
	cli.Execute()
}
