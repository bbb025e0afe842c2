package main

import (
	"github.com/daedaleanai/verilated/cmd"
)

func main() {
	cmd.Execute()
}
