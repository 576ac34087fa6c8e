// Command opgen generates typed TypeScript clients from OpenAPI documents.
package main

import "github.com/erraggy/opgen/cmd/opgen/commands"

func main() {
	commands.Execute()
}
