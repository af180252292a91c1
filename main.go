package main

import (
	"os"

	"github.com/go-wishlist/go-wishlist/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
