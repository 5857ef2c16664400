// Package main provides the stochad CLI.
package main

import (
	"fmt"
	"os"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("stochad %s\n", version)
		return
	}

	fmt.Println("stochad - Stochastic Algorithmic Differentiation for Monte Carlo")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("")
	fmt.Println("See examples/digital-option for a full sensitivity comparison.")
}
