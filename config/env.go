package config

import (
	"fmt"

	"github.com/joho/godotenv"
)

// LoadENV loads variables from a .env file when one exists. Running without
// a file is fine; the process environment then has to provide everything.
func LoadENV() error {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using process environment")
	}
	return nil
}
