//go:build linux

package cmd

import (
	"fmt"

	"github.com/hodgesds/perf-utils"
)

func countCPUInstructions(name string, f func() error) (err error) {
	var pv *perf.ProfileValue
	if pv, err = perf.CPUInstructions(f); err != nil {
		return
	}
	fmt.Printf("[%d]\t\t= CPU Instructions (%s)\n", pv.Value, name)
	return
}
