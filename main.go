package main

import "github.com/prasetya/wiki-management/cmd"

func main() {
	cmd.Execute()
}
