package main

import (
	"os"

	"bennypowers.dev/twls/internal/log"
)

func main() {
	if err := Execute(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}
