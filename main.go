package main

import "github.com/spesecasa/cassa/cmd"

func main() {
	cmd.Execute()
}
