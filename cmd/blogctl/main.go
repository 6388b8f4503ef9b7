package main

import (
	"folio/internal/cli"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	cli.Execute()
}
