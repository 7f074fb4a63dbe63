package main

import (
	"log"

	"github.com/PENTASHIFT/prosebot/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
