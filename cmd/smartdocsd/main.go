package main

import (
	"os"

	_ "smartdocs/internal/apidocs"
	"smartdocs/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
