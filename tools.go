// tools.go
package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/okavatti/vash/vash"
)

func newBenchCmd() *cobra.Command {
	var (
		data       string
		iterations int
		width      int
		height     int
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time tree building and rendering for every algorithm",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if iterations < 1 {
				return errors.Wrapf(errUsage, "iterations must be positive, got %d", iterations)
			}
			results, err := vash.BenchmarkAlgorithms([]byte(data), iterations, width, height)
			if err != nil {
				return err
			}
			return vash.PrintBenchmarkResults(cmd.OutOrStdout(), results)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&data, "data", "d", "vash", "the data to hash")
	flags.IntVarP(&iterations, "iterations", "n", 10, "renders per algorithm")
	flags.IntVarP(&width, "width", "w", vash.DefaultWidth, "image width")
	flags.IntVarP(&height, "height", "H", vash.DefaultHeight, "image height")
	return cmd
}

func newSaltCmd() *cobra.Command {
	var algorithm string
	cmd := &cobra.Command{
		Use:   "salt",
		Short: "Print a random base64 salt for --salt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			algo, err := vash.ParseAlgorithm(algorithm)
			if err != nil {
				return err
			}
			salt, err := vash.GenerateSalt(algo, nil)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), vash.EncodeSalt(salt))
			return err
		},
	}
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", string(vash.Algorithm11), "algorithm the salt is for")
	return cmd
}
