package cmd

import (
	"github.com/pkg/profile"
	"github.com/spf13/viper"
)

// runInstrumented runs f under the profiling and instruction counting selected by the flags.
func runInstrumented(name string, f func() error) error {
	if viper.GetBool("profile") {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	if viper.GetBool("perf") {
		return countCPUInstructions(name, f)
	}
	return f()
}
