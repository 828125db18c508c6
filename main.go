package main

import (
	"os"

	"github.com/GoBancaUno/GoBancaUno/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
