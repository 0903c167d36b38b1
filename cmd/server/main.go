package main

import "github.com/NihalNavath/Campus-Navigator/cmd/server/cmd"

func main() {
	cmd.Execute()
}
