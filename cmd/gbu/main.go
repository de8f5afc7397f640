package main

import (
	"os"

	"github.com/PetA199003/GBU-Management/cmd/gbu/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
