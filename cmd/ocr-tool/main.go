package main

import (
	"log"
	"os"

	"github.com/ridge/must/v2"

	"gocr/internal/config"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	settings := must.OK1(config.Load())
	cli := NewCLI(settings)
	if err := cli.Run(os.Args[1:]); err != nil {
		log.Fatal("Error: ", err)
	}
}
