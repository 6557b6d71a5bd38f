package main

import "catalog-service/cmd"

func main() {
	cmd.Execute()
}
