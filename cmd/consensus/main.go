// Command consensus runs multi-agent LLM simulations from the terminal: a
// three-role consensus discussion that scores its experts, and a two-persona
// debate.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
