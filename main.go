package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/carebell/carebell/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		cmd.Die(err)
	}
}
