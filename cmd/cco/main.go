package main

import "github.com/yapay-ai/cloud-cost-optimizer/internal/cli"

func main() {
	cli.Execute()
}
