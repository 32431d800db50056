package main

import "github.com/lcalzada-xor/prr/cmd/prrctl/cmd"

func main() {
	cmd.Execute()
}
