package main

import (
	"github.com/joho/godotenv"

	"greenlens/internal/cli"
)

func main() {
	// API keys may come from a local .env file; missing is fine.
	_ = godotenv.Load()

	cli.Execute()
}
