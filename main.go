package main

import "github.com/notargets/movingcloud/cmd"

func main() {
	cmd.Execute()
}
