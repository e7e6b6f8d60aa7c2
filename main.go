package main

import "mensajero/cmd"

func main() {
	cmd.Execute()
}
