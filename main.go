package main

import "github.com/jsphweid/upbeat/cmd"

func main() {
	cmd.Execute()
}
