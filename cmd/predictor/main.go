package main

import "github.com/MistByteX/predictor/internal/cli"

func main() {
	cli.Execute()
}
