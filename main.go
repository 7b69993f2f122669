package main

import "storefront/commands"

func main() {
	commands.Execute()
}
