package main

import "github.com/safetyedu/safety-edu/cmd/safety-edu/commands"

func main() {
	commands.Execute()
}
