package main

import (
	"arcade_backend/internal/app"
	"log"
)

func main() {
	a := app.NewApp()
	if err := a.Run(); err != nil {
		log.Fatal(err)
	}
}
