package main

import (
	"context"
	"fmt"
	"os"

	"lxoreader/cmd/lxob/command"
)

func main() {
	if err := command.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
