package main

import "linguachat/cmd/linguachat/cmd"

func main() {
	cmd.Execute()
}
