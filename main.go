package main

import "github.com/northcutted/scanboard/cmd"

func main() {
	cmd.Execute()
}
