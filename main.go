package main

import (
	"log"

	"github.com/spigell/hr-screener/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
