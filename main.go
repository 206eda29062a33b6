package main

import (
	"log"

	"github.com/JackCapstaff/rehearsal-schedule/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}
