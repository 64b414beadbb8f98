package main

import (
	"log"

	"github.com/froemosen/focuspartitioner/internal/cli"
)

func main() {
	if err := cli.NewRoot().Execute(); err != nil {
		log.Fatal(err)
	}
}
