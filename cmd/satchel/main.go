// Command satchel is the CLI entry point.
package main

import "github.com/origin-mobile/satchel/internal/cli"

func main() {
	cli.Execute()
}
