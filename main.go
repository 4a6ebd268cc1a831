package main

import (
	"fmt"
	"os"

	"github.com/leg100/notelist/internal/tui/top"
)

func main() {
	if err := top.Start(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}
