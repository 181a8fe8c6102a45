package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/born-ml/axle/internal/backend/cpu"
	"github.com/born-ml/axle/internal/la"
	"github.com/born-ml/axle/internal/matrix"
	"github.com/born-ml/axle/internal/serialization"
)

// app holds state shared by subcommands.
type app struct {
	logging bool
}

// options returns the matrix options for one command run. With logging
// enabled, every loaded or built matrix logs its evaluation to stderr.
func (a *app) options(cmd *cobra.Command) []matrix.Option {
	if !a.logging {
		return nil
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		With().Timestamp().Logger()
	return []matrix.Option{
		matrix.WithEngine(cpu.New(cpu.WithLogger(logger))),
		matrix.WithAttribute(matrix.AttributeEnableLogging),
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "axle",
		Short:         "Inspect and combine .axm matrix files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&a.logging, "log", os.Getenv("AXLE_LOG") == "1",
		"log engine evaluations to stderr (env AXLE_LOG=1)")

	root.AddCommand(
		newVersionCmd(),
		newIdentityCmd(a),
		newShowCmd(a),
		newNormCmd(a),
		newBinaryCmd(a, "add", "Write the sum of two matrices", sum),
		newBinaryCmd(a, "multiply", "Write the matrix product of two matrices", product),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "axle %s\n", version)
		},
	}
}

func newIdentityCmd(a *app) *cobra.Command {
	var (
		size      int
		precision string
		output    string
	)
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Write a size×size identity matrix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if size < 1 {
				return fmt.Errorf("--size must be >= 1, got %d", size)
			}
			switch precision {
			case "float32":
				return serialization.Write(output, matrix.Identity[float32](size, a.options(cmd)...))
			case "float64":
				return serialization.Write(output, matrix.Identity[float64](size, a.options(cmd)...))
			default:
				return fmt.Errorf("unknown precision %q (want float32 or float64)", precision)
			}
		},
	}
	cmd.Flags().IntVar(&size, "size", 3, "side length")
	cmd.Flags().StringVar(&precision, "precision", "float64", "element type: float32 or float64")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Print the shape and elements of a matrix file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := serialization.ScalarTypeOf(args[0])
			if err != nil {
				return err
			}
			if st == la.ScalarFloat {
				return show[float32](cmd.OutOrStdout(), args[0], a.options(cmd))
			}
			return show[float64](cmd.OutOrStdout(), args[0], a.options(cmd))
		},
	}
}

func show[T matrix.Element](w io.Writer, path string, opts []matrix.Option) error {
	m, err := serialization.Read[T](path, opts...)
	if err != nil {
		return err
	}
	rows, cols := m.Shape()
	fmt.Fprintf(w, "%s %d×%d\n", scalarTag[T](), rows, cols)
	fmt.Fprintln(w, m)
	return nil
}

func newNormCmd(a *app) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "norm FILE",
		Short: "Print a norm of a matrix file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseNorm(kind)
			if err != nil {
				return err
			}
			st, err := serialization.ScalarTypeOf(args[0])
			if err != nil {
				return err
			}
			if st == la.ScalarFloat {
				return printNorm[float32](cmd.OutOrStdout(), args[0], n, a.options(cmd))
			}
			return printNorm[float64](cmd.OutOrStdout(), args[0], n, a.options(cmd))
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "l2", "norm: l1, l2 or linf")
	return cmd
}

func parseNorm(s string) (matrix.Norm, error) {
	switch strings.ToLower(s) {
	case "l1":
		return matrix.NormL1, nil
	case "l2":
		return matrix.NormL2, nil
	case "linf":
		return matrix.NormLInfinity, nil
	default:
		return 0, fmt.Errorf("unknown norm %q (want l1, l2 or linf)", s)
	}
}

func printNorm[T matrix.Element](w io.Writer, path string, n matrix.Norm, opts []matrix.Option) error {
	m, err := serialization.Read[T](path, opts...)
	if err != nil {
		return err
	}
	v, status := m.Norm(n)
	if err := status.Err(); err != nil {
		return err
	}
	if status.IsWarning() {
		fmt.Fprintf(w, "%.13f (%s)\n", v, status)
		return nil
	}
	fmt.Fprintf(w, "%.13f\n", v)
	return nil
}

// binaryOp combines two matrices, bound once per element type.
type binaryOp struct {
	f32 func(a, b *matrix.Matrix[float32]) *matrix.Matrix[float32]
	f64 func(a, b *matrix.Matrix[float64]) *matrix.Matrix[float64]
}

var (
	sum = binaryOp{
		f32: matrix.Add[float32],
		f64: matrix.Add[float64],
	}
	product = binaryOp{
		f32: (*matrix.Matrix[float32]).MatrixProduct,
		f64: (*matrix.Matrix[float64]).MatrixProduct,
	}
)

func newBinaryCmd(a *app, use, short string, op binaryOp) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   use + " A B",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := serialization.ScalarTypeOf(args[0])
			if err != nil {
				return err
			}
			if st == la.ScalarFloat {
				return combine(args[0], args[1], output, op.f32, a.options(cmd))
			}
			return combine(args[0], args[1], output, op.f64, a.options(cmd))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func combine[T matrix.Element](pathA, pathB, output string, op func(a, b *matrix.Matrix[T]) *matrix.Matrix[T], opts []matrix.Option) error {
	a, err := serialization.Read[T](pathA, opts...)
	if err != nil {
		return err
	}
	b, err := serialization.Read[T](pathB, opts...)
	if err != nil {
		return err
	}
	return serialization.Write(output, op(a, b))
}

func scalarTag[T matrix.Element]() la.ScalarType {
	var zero T
	if _, ok := any(zero).(float32); ok {
		return la.ScalarFloat
	}
	return la.ScalarDouble
}
