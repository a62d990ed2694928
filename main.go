package main

import "s3lib/cmd"

func main() {
	cmd.Execute()
}
