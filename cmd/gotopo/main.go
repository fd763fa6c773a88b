// Command gotopo reconstructs the features of a YAML scenario through its
// rigid plates and deforming networks and prints the results as tables.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gotopo:", err)
		os.Exit(1)
	}
}
