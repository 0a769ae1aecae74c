// Command pantry checks recipes against allergen profiles.
//
// Usage:
//
//	pantry check --allergen eggs Flour salt eggs
//	pantry check --config pantry.yaml --consumer alice
//	pantry profile set alice eggs milk
//	pantry serve --addr :8080
//	pantry names --desc "Rehan Kodekar" "Abishek pandey"
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if !errors.Is(err, errAllergenFound) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
