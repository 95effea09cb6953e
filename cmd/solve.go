/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/wgfem/InputParameters"
	"github.com/notargets/wgfem/la"
)

// SolveCmd represents the solve command
var SolveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a sparse symmetric or structurally symmetric linear system",
	Long: `
Reads a sparse linear system with one or more right hand sides from an input file and solves
it, using the configured number of parallel workers.

wgfem solve -I system.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err    error
			icFile string
		)
		if icFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			panic(err)
		}
		sp := processSolveInput(icFile)
		err = runInstrumented("solve", func() (err error) {
			var X *mat.Dense
			if X, err = RunSolve(sp, viper.GetInt("workers")); err != nil {
				return
			}
			fmt.Printf("Solution:\n%v\n", mat.Formatted(X, mat.Squeeze()))
			return
		})
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(SolveCmd)
	SolveCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file describing the sparse system")
}

func processSolveInput(icFile string) (sp *InputParameters.SystemParameters) {
	if len(icFile) == 0 {
		err := fmt.Errorf("must supply a system file (-I, --inputConditionsFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Test System"
Type: Symmetric # Upper triangle entries only, can be "StructurallySymmetric"
Size: 3
Entries:
  - {Row: 0, Col: 0, Value: 1}
  - {Row: 1, Col: 1, Value: 2}
  - {Row: 2, Col: 2, Value: 3}
RHS:
  - [3, 2, 1]
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var (
		data []byte
		err  error
	)
	if data, err = os.ReadFile(icFile); err != nil {
		panic(err)
	}
	sp = &InputParameters.SystemParameters{}
	if err = sp.Parse(data); err != nil {
		panic(err)
	}
	sp.Print()
	return
}

// RunSolve solves the system for all of its right hand sides, one solution column per side.
func RunSolve(sp *InputParameters.SystemParameters, workers int) (X *mat.Dense, err error) {
	var A *la.SparseMatrix
	if A, err = sp.NewSystem(); err != nil {
		return
	}
	B := mat.NewDense(sp.Size, len(sp.RHS), nil)
	for j, b := range sp.RHS {
		B.SetCol(j, b)
	}
	return la.NewSolver(workers).SolveSparse(A, B)
}
