package main

import (
	"github.com/volexlabs/volscope/cmd"
)

func main() {
	cmd.Execute()
}
