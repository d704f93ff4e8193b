package main

import "github.com/tonyc973/ForgeSwarm/cmd"

func main() {
	cmd.Execute()
}
