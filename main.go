package main

import "github.com/screenwise/screenwise/cmd"

func main() {
	cmd.Execute()
}
