package main

import (
	"log"

	"github.com/mkaddani/job-hunter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
