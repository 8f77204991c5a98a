package main

import "github.com/sw33tLie/pricebot/cmd"

func main() {
	cmd.Execute()
}
