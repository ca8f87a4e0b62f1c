package main

import "github.com/inovacc/clientdb/cmd"

func main() {
	cmd.Execute()
}
