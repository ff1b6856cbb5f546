package main

import "storage-probe/cmd"

func main() {
	cmd.Execute()
}
