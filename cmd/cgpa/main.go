package main

import "github.com/openswoop/cgpa/cmd"

func main() {
	cmd.Execute()
}
