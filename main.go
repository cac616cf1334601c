package main

import "keymidi/cmd"

func main() {
	cmd.Execute()
}
