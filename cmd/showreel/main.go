// Command showreel renders, plays and tunes a scripted audiovisual show.
//
// Usage:
//
//	showreel [flags] <command> [args]
//
// Commands:
//
//	export  - render every frame to a video or a PNG sequence
//	play    - run the show headless against the wall clock
//	params  - inspect, set, save and load segment parameters
//	camera  - plan a slides camera path from a page's layout
package main

import (
	"fmt"
	"os"

	"github.com/ivlev/showreel/cmd/showreel/commands"
)

var version = "dev"

func main() {
	commands.SetVersion(version)
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
