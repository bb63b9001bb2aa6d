package main

import "github.com/khrees2412/campuslink/cmd"

func main() {
	cmd.Execute()
}
