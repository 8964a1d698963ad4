package main

import (
	"log"
	"os"

	"github.com/dhartunian/ticksum/internal/cli"
	"github.com/dhartunian/ticksum/internal/logs"
)

func main() {
	wrapper := cli.NewWrapper()
	err := wrapper.Run(os.Args)
	logs.Sync()
	if err != nil {
		log.Fatalln(err)
	}
}
