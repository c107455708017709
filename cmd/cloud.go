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
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/movingcloud/InputParameters"
	"github.com/notargets/movingcloud/driver"
)

type ModelCloud struct {
	InputFile  string
	Overrides  []string // "section/key=value"
	NRanks     int
	NThreads   int
	ProfileDir string
	CountPerf  bool
}

// ExampleInput is a complete deck: kpc, Myr and a mass unit chosen so that
// 0.1 m_H/cm^3 is one code density unit.
const ExampleInput = `
########################################
problem:
  generator: moving_cloud
problem/moving_cloud:
  rho_ambient_mh_cm3: 0.1
  T_ambient_K: 1.e6
  T_cloud_K: 1.e4
  velocity_cloud_km_s: 100
  cloud_radius_factor: 1.1
  motion_axis: x1
hydro:
  gamma: 1.6666666666666667
  mu: 0.6
units:
  code_length_cgs: 3.0856775809623245e21 # kpc
  code_mass_cgs: 4.916837306328784e+39
  code_time_cgs: 3.15576e13 # Myr
parthenon/mesh:
  nx1: 64
  x1min: -4
  x1max: 4
  nx2: 32
  x2min: -2
  x2max: 2
  nx3: 32
  x3min: -2
  x3max: 2
parthenon/meshblock:
  nx1: 16
  nx2: 16
  nx3: 16
########################################
`

// CloudCmd represents the cloud command
var CloudCmd = &cobra.Command{
	Use:   "cloud",
	Short: "Generate the initial state of a cloud moving through a hot ambient medium",
	Long: `
Reads an input deck, derives the cloud and ambient state and fills every mesh
block with the smoothed cloud profile,

movingcloud cloud -I input.yaml -r 4 --set problem/moving_cloud/T_cloud_K=2e4`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		mc := &ModelCloud{
			InputFile:  viper.GetString("inputFile"),
			NRanks:     viper.GetInt("ranks"),
			NThreads:   viper.GetInt("threads"),
			ProfileDir: viper.GetString("profile"),
			CountPerf:  viper.GetBool("perf"),
		}
		if mc.Overrides, err = cmd.Flags().GetStringArray("set"); err != nil {
			panic(err)
		}
		pin := processInput(mc)
		if len(mc.ProfileDir) != 0 {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(mc.ProfileDir)).Stop()
		}
		if _, err = RunCloud(context.Background(), mc, pin, os.Stdout, logrus.StandardLogger()); err != nil {
			logrus.WithError(err).Error("moving cloud setup failed")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(CloudCmd)
	CloudCmd.Flags().StringP("inputFile", "I", "", "YAML input deck, sections like:\n\t- problem/moving_cloud\n\t- hydro\n\t- units\n\t- parthenon/mesh")
	CloudCmd.Flags().IntP("ranks", "r", 1, "number of simulated ranks")
	CloudCmd.Flags().IntP("threads", "t", 0, "worker goroutines per rank, 0 = GOMAXPROCS/ranks")
	CloudCmd.Flags().StringArray("set", nil, "override a deck parameter, as section/key=value (repeatable)")
	CloudCmd.Flags().String("profile", "", "write a CPU profile to this directory")
	CloudCmd.Flags().Bool("perf", false, "count CPU instructions spent filling blocks (Linux perf events)")
	for _, name := range []string{"inputFile", "ranks", "threads", "profile", "perf"} {
		if err := viper.BindPFlag(name, CloudCmd.Flags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func processInput(mc *ModelCloud) (pin *InputParameters.ParameterInput) {
	var (
		err error
	)
	if len(mc.InputFile) == 0 {
		err = fmt.Errorf("must supply an input deck (-I, --inputFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		fmt.Printf("Example File:%s\n", ExampleInput)
		os.Exit(1)
	}
	if pin, err = readInput(mc); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	return
}

func readInput(mc *ModelCloud) (pin *InputParameters.ParameterInput, err error) {
	if pin, err = InputParameters.ReadFile(mc.InputFile); err != nil {
		return
	}
	for _, assignment := range mc.Overrides {
		if err = pin.Set(assignment); err != nil {
			return
		}
	}
	return
}

// RunCloud prints the deck, then initializes and generates the problem. The
// reporting rank's summary goes to w.
func RunCloud(ctx context.Context, mc *ModelCloud, pin *InputParameters.ParameterInput,
	w io.Writer, log logrus.FieldLogger) (diag *driver.Diagnostics, err error) {
	var (
		d *driver.Driver
	)
	if d, err = driver.NewDriver(pin, driver.Config{
		NRanks:            mc.NRanks,
		NThreads:          mc.NThreads,
		Report:            w,
		Logger:            log,
		CountInstructions: mc.CountPerf,
	}); err != nil {
		return
	}
	pin.Print(w)
	if diag, err = d.Run(ctx); err != nil {
		return
	}
	if mc.CountPerf {
		log.WithField("instructions", d.Instructions()).Info("block fill cost")
	}
	return
}
