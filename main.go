package main

import (
	"log"
	"os"
	"runtime/pprof"

	"github.com/lumipallolabs/driveinfo/internal/cli"
)

var version = "dev"

func main() {
	// Enable CPU profiling if CPUPROFILE env var is set
	if cpuProfile := os.Getenv("CPUPROFILE"); cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		// cli.Execute ends with os.Exit
		cli.OnExit(func() {
			pprof.StopCPUProfile()
			f.Close()
		})
	}

	cli.Execute(version)
}
