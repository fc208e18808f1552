package main

import (
	"os"

	"github.com/kimjbstar/korea-public-village-forecast/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
