package main

import "github.com/rocky-star/audiveris-packager/cmd/audiveris-packager/cmd"

func main() {
	cmd.Execute()
}
