package main

import "github.com/emres/macrolog/cmd/macrolog"

func main() {
	macrolog.Execute()
}
