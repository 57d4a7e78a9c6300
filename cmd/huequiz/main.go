package main

import "github.com/MeKo-Tech/huequiz/internal/cmd"

func main() {
	cmd.Execute()
}
