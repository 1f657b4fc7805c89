package main

import (
	"fmt"
	"os"

	"github.com/dateroad/admin-gateway/internal/app"
)

func main() {
	if err := app.Run(os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "admin-gateway: %v\n", err)
		os.Exit(1)
	}
}
