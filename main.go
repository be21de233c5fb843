package main

import "querry/cmd"

func main() {
	cmd.Execute()
}
