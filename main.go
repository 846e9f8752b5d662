package main

import "github.com/mputra/treasury-management/cmd"

func main() {
	cmd.Execute()
}
