package main

import (
	"os"

	"github.com/uvalib/imagesource/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
