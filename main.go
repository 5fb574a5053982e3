package main

import (
	"clinassist/cli"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if exists
	_ = godotenv.Load()
}

func main() {
	cli.Execute()
}
