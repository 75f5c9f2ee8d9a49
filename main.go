package main

import "rdspgbadger/cmd"

func main() {
	cmd.Execute()
}
