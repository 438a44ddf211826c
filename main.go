package main

import "ledgercheck/cmd"

func main() {
	cmd.Execute()
}
