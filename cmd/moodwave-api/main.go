package main

import (
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real deployments use environment variables.
	_ = godotenv.Load()

	Execute()
}
