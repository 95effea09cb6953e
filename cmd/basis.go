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

	"github.com/notargets/wgfem/InputParameters"
	"github.com/notargets/wgfem/mesh"
	"github.com/notargets/wgfem/poly"
	"github.com/notargets/wgfem/types"
	"github.com/notargets/wgfem/weakgrad"
	"github.com/notargets/wgfem/wgbasis"
)

// BasisCmd represents the basis command
var BasisCmd = &cobra.Command{
	Use:   "basis",
	Short: "Build a rectangular mesh and its Weak Galerkin basis, and report the enumeration",
	Long: `
Builds the structured rectangular mesh and the Weak Galerkin basis described by an input file,
computing the weak gradients of every basis shape function, then prints the element, side and
basis element counts.

wgfem basis -I problem.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err    error
			icFile string
		)
		if icFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			panic(err)
		}
		ip := processBasisInput(icFile)
		err = runInstrumented("basis", func() (err error) {
			var wgb *wgbasis.WgBasis
			if wgb, err = RunBasis(ip); err != nil {
				return
			}
			PrintBasisSummary(wgb)
			return
		})
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(BasisCmd)
	BasisCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for the mesh and basis parameters")
}

func processBasisInput(icFile string) (ip *InputParameters.WGParameters) {
	if len(icFile) == 0 {
		err := fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Test Case"
MinBounds: [0, 0]
MaxBounds: [1, 1]
MeshLDims: [10, 10]
IntPolysDegLim:
  Type: MaxMonDeg # Can be "MaxMonFactorDeg"
  K: 2
SidePolysDegLim:
  Type: MaxMonDeg
  K: 1
IntegrationRelErr: 1.e-12 # Optional
IntegrationAbsErr: 1.e-12 # Optional
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
	ip = &InputParameters.WGParameters{}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	ip.Print()
	return
}

// RunBasis builds the mesh and the basis with weak gradients from the reference solver.
func RunBasis(ip *InputParameters.WGParameters) (wgb *wgbasis.WgBasis, err error) {
	var (
		rm              *mesh.RectMesh
		intLim, sideLim poly.DegLim
		solver          *weakgrad.Solver
	)
	if rm, err = ip.NewMesh(); err != nil {
		return
	}
	if intLim, sideLim, err = ip.DegLims(); err != nil {
		return
	}
	if solver, err = weakgrad.NewSolver(intLim); err != nil {
		return
	}
	return wgbasis.New(rm, intLim, sideLim, solver)
}

func PrintBasisSummary(wgb *wgbasis.WgBasis) {
	var (
		m        = wgb.Mesh()
		nbByAxis = make([]int, m.SpaceDim())
	)
	for n := types.NBSideNum(0); int(n) < m.NumNBSides(); n++ {
		nbByAxis[m.FEInclusionsOfNBSide(n).SideFaceInFE1.PerpAxis()]++
	}
	fmt.Printf("[%d]\t\t\t\t= Space Dimension\n", m.SpaceDim())
	fmt.Printf("[%d]\t\t\t\t= Finite Elements\n", m.NumFEs())
	fmt.Printf("[%d]\t\t\t\t= Non-Boundary Sides\n", m.NumNBSides())
	for a, count := range nbByAxis {
		fmt.Printf("[%d]\t\t\t\t= Non-Boundary Sides Perpendicular to Axis %d\n", count, a)
	}
	fmt.Printf("[%d]\t\t\t\t= Boundary Sides\n", m.NumBoundarySides())
	fmt.Printf("%8.5f\t\t= Element Diameter\n", m.MaxFEDiameter())
	fmt.Printf("[%d]\t\t\t\t= Monomials per Interior\n", wgb.MonsPerFEInt())
	fmt.Printf("[%d]\t\t\t\t= Monomials per Side\n", wgb.MonsPerFESide())
	fmt.Printf("[%d]\t\t\t\t= Interior Basis Elements\n", wgb.NumIntEls())
	fmt.Printf("[%d]\t\t\t\t= Total Basis Elements\n", wgb.TotalEls())
	fmt.Printf("[%d]\t\t\t\t= Basis Pair Element Triplets Upper Bound\n", wgb.UBEstimateNumBelBelCommonSupportFETriplets())
}
