package main

import "github.com/abureyko/shipping-agent/cmd"

func main() {
	cmd.Execute()
}
