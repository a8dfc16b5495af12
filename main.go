package main

import "github.com/solopage/solopage-backend/cmd"

func main() {
	cmd.Init()
}
