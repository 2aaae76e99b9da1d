// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gocea"
)

var (
	caseFile      string
	targetEntropy float64
	verbose       bool

	exitPressure float64
	exitAR       float64
	subsonic     bool
)

// main registers the equilibrium/frozen/shifting subcommands and executes
// the root command, reporting any error the way the teacher's main.go
// reports a failed run: a recovered panic or returned error prints in red
// via io.PfRed and exits with status 1.
func main() {
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	rootCmd := &cobra.Command{
		Use:   "gocea",
		Short: "Gordon-McBride chemical equilibrium and rocket performance evaluator",
	}
	rootCmd.PersistentFlags().StringVar(&caseFile, "case", "", "case file (.json or .yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print per-iteration diagnostics")

	equilCmd := &cobra.Command{
		Use:   "equilibrium",
		Short: "solve chemical equilibrium for a case (TP, HP or SP)",
		RunE:  runEquilibrium,
	}
	equilCmd.Flags().Float64Var(&targetEntropy, "target-entropy", 0, "target entropy kJ/(kg*K), SP only")

	frozenCmd := &cobra.Command{
		Use:   "frozen",
		Short: "frozen-composition nozzle performance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPerformance(gocea.ComputeFrozen)
		},
	}
	addExitFlags(frozenCmd)

	shiftingCmd := &cobra.Command{
		Use:   "shifting",
		Short: "shifting-equilibrium nozzle performance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPerformance(gocea.ComputeShifting)
		},
	}
	addExitFlags(shiftingCmd)

	rootCmd.AddCommand(equilCmd, frozenCmd, shiftingCmd)

	io.Pf("gocea -- Gordon-McBride chemical equilibrium evaluator\n")
	io.Pf("Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.\n")
	io.Pf("Use of this source code is governed by a BSD-style license.\n\n")

	if err := rootCmd.Execute(); err != nil {
		io.PfRed("ERROR: %v\n", err)
		os.Exit(1)
	}
}

func addExitFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&exitPressure, "exit-pressure", 0, "exit static pressure, atm")
	cmd.Flags().Float64Var(&exitAR, "exit-ar", 0, "exit area ratio Ae/At")
	cmd.Flags().BoolVar(&subsonic, "subsonic", false, "treat --exit-ar as the subsonic branch")
}

func loadCase() (*gocea.Case, *gocea.CaseSpec, error) {
	if caseFile == "" {
		return nil, nil, chk.Err("gocea: --case is required")
	}
	chk.Verbose = verbose
	spec, err := gocea.LoadCaseSpec(caseFile)
	if err != nil {
		return nil, nil, err
	}
	c, _, _, err := spec.Build()
	if err != nil {
		return nil, nil, err
	}
	return c, spec, nil
}

func runEquilibrium(cmd *cobra.Command, args []string) error {
	c, spec, err := loadCase()
	if err != nil {
		return err
	}
	problem, err := gocea.ParseProblem(spec.Problem)
	if err != nil {
		return err
	}
	se := spec.TargetEntropy
	if cmd.Flags().Changed("target-entropy") {
		se = targetEntropy
	}

	result, err := gocea.ComputeEquilibrium(c, problem, se)
	if err != nil {
		return err
	}

	printProperties(result.Properties)
	io.Pf("iterations         = %d\n", result.Iterations)
	return nil
}

func exitCondition() (gocea.ExitCondition, error) {
	switch {
	case exitPressure > 0:
		return gocea.ExitCondition{Kind: gocea.Pressure, Value: exitPressure}, nil
	case exitAR > 0:
		kind := gocea.SupersonicAreaRatio
		if subsonic {
			kind = gocea.SubsonicAreaRatio
		}
		return gocea.ExitCondition{Kind: kind, Value: exitAR}, nil
	default:
		return gocea.ExitCondition{}, chk.Err("gocea: one of --exit-pressure or --exit-ar is required")
	}
}

func runPerformance(run func(*gocea.Case, gocea.ExitCondition) (*gocea.PerformanceResult, error)) error {
	c, _, err := loadCase()
	if err != nil {
		return err
	}
	ec, err := exitCondition()
	if err != nil {
		return err
	}

	result, err := run(c, ec)
	if err != nil {
		return err
	}

	io.Pf("chamber: T=%.2f K  P=%.3f atm\n", result.Chamber.T, result.Chamber.P)
	io.Pf("throat:  T=%.2f K  P=%.3f atm  converged=%v\n", result.Throat.T, result.Throat.P, !result.ThroatNonConvergence)
	if result.Exit != nil {
		io.Pf("exit:    T=%.2f K  P=%.3f atm  Ae/At=%.4f  converged=%v\n",
			result.Exit.T, result.Exit.P, result.Exit.AeAt, !result.ExitNonConvergence)
	}
	io.Pf("\nIsp      = %.3f m/s\n", result.Isp)
	io.Pf("Ivac     = %.3f m/s\n", result.Ivac)
	io.Pf("C*       = %.3f m/s\n", result.CStar)
	io.Pf("Cf       = %.5f\n", result.Cf)
	if result.ThroatNonConvergence || result.ExitNonConvergence {
		io.Pfyel("\nwarning: a nozzle loop hit its iteration cap; values above are the last computed iterate, not a converged solution\n")
	}
	return nil
}

func printProperties(p gocea.Properties) {
	io.Pf("T                  = %.3f K\n", p.T)
	io.Pf("P                  = %.3f atm\n", p.P)
	io.Pf("H                  = %.5f kJ/kg\n", p.H)
	io.Pf("U                  = %.5f kJ/kg\n", p.U)
	io.Pf("G                  = %.5f kJ/kg\n", p.G)
	io.Pf("S                  = %.5f kJ/(kg*K)\n", p.S)
	io.Pf("M                  = %.4f g/mol\n", p.M)
	io.Pf("Cp                 = %.5f kJ/(kg*K)\n", p.Cp)
	io.Pf("Cv                 = %.5f kJ/(kg*K)\n", p.Cv)
	io.Pf("gamma              = %.5f\n", p.Gamma)
	io.Pf("sound speed        = %.3f m/s\n", p.SoundSpeed)
}
