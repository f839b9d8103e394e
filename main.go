package main

import (
	"os"

	"github.com/fakhrymubarak/eventsphere-api/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
