package main

import "synthdeck/cmd"

func main() {
	cmd.Execute()
}
