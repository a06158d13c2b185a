package main

import "github.com/GLPer-Ltd/loganhealth-intake/cmd/intake"

func main() {
	intake.Execute()
}
