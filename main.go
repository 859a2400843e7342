package main

import "github.com/inovacc/nutrilog/cmd"

func main() {
	cmd.Execute()
}
