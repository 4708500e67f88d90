package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/existflow/angple/internal/cli"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
