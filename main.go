package main

import "keepsake/cmd"

func main() {
	cmd.Execute()
}
