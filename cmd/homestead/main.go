// Command homestead is the command-line front end to the homestead store.
package main

import "github.com/mesh-intelligence/homestead/internal/cli"

func main() {
	cli.Execute()
}
