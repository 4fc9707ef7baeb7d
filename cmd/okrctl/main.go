package main

import (
	"fmt"
	"okr_backend/cmd/okrctl/commands"
	"os"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "okrctl:", err)
		os.Exit(1)
	}
}
