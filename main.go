package main

import "github.com/notargets/wgfem/cmd"

func main() {
	cmd.Execute()
}
