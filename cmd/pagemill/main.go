package main

import "github.com/pagemill/pagemill/cmd/pagemill/cmd"

func main() {
	cmd.Execute()
}
