/*
Copyright © 2026 Sellerdash <eng@sellerdash.io>
*/
package main

import (
	"os"

	"github.com/sellerdash/sellertray/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
