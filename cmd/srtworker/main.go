package main

import (
	"log"
	"os"

	"github.com/viant/srtworker/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		log.Printf("srtworker: %v", err)
		os.Exit(cli.ExitCode(err))
	}
}
