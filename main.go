package main

import (
	"os"

	"github.com/whyideas/whyideas/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
