package main

import "cartload/cmd"

func main() {
	cmd.Execute()
}
