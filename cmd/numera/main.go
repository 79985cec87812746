/*
File    : numera/cmd/numera/main.go
Project : Numera
*/
package main

import (
	"os"

	"github.com/numera-lang/numera/cmd/numera/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
