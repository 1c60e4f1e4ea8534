// main.go
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	vlog "github.com/okavatti/vash/internal/log"
	"github.com/okavatti/vash/vash"
)

// errUsage marks command line misuse.
var errUsage = errors.New("usage")

func main() {
	cmd := newRootCmd()
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}

// exitCode maps an error to the process status: 2 for bad arguments or
// formats, 3 for an unknown algorithm, 4 for a bad salt, 5 for a missing
// digest and 1 for anything else.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, vash.ErrUnknownAlgorithm):
		return 3
	case errors.Is(err, vash.ErrInvalidSalt):
		return 4
	case errors.Is(err, vash.ErrMissingCryptoPrimitive):
		return 5
	case errors.Is(err, vash.ErrInvalidArgument),
		errors.Is(err, vash.ErrUnknownFormat),
		errors.Is(err, errUsage):
		return 2
	}
	return 1
}

type renderOptions struct {
	algorithm    string
	data         onceString
	file         onceString
	salt         string
	saltFile     string
	output       string
	format       string
	width        int
	height       int
	debugTree    bool
	debugEntropy bool
	preview      bool
	verbose      bool
	listAlgos    bool
}

func newRootCmd() *cobra.Command {
	opts := &renderOptions{}
	var log *logrus.Logger

	cmd := &cobra.Command{
		Use:   "vash",
		Short: "Vash, the visual hash function",
		Long: `Vash turns arbitrary data into a deterministic image. The same
algorithm, salt and data always give the same picture.`,
		Version:       vash.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logrus.InfoLevel
			if opts.verbose {
				level = logrus.DebugLevel
			}
			stderr := cmd.ErrOrStderr()
			log = vlog.New(stderr, isTerminal(stderr), level)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.listAlgos {
				return printKnownAlgorithms(cmd.OutOrStdout())
			}
			return runRender(cmd, opts, log)
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Wrap(errUsage, err.Error())
	})

	flags := cmd.Flags()
	flags.StringVarP(&opts.algorithm, "algorithm", "a", "", "image generator algorithm (see known-algorithms)")
	flags.VarP(&opts.data, "data", "d", "the data to hash, as a string")
	flags.VarP(&opts.file, "file", "f", "read the data from a file (- for stdin)")
	flags.StringVarP(&opts.salt, "salt", "s", "", "base64 salt, zero padded or truncated to the algorithm's size")
	flags.StringVarP(&opts.saltFile, "salt-file", "S", "", "read the salt from a file (- for stdin)")
	flags.StringVarP(&opts.output, "output", "o", "output.png", "file to write (- for stdout)")
	flags.StringVarP(&opts.format, "format", "F", "", "one of bmp, jpeg or png; guessed from --output when unset")
	flags.IntVarP(&opts.width, "width", "w", vash.DefaultWidth, "image width")
	flags.IntVarP(&opts.height, "height", "H", vash.DefaultHeight, "image height")
	flags.BoolVar(&opts.debugTree, "debug-tree", false, "print the generated tree to stderr")
	flags.BoolVar(&opts.debugEntropy, "debug-entropy", false, "report the entropy drawn while building the tree")
	flags.BoolVar(&opts.preview, "preview", false, "show the image in the terminal after writing it")
	flags.BoolVar(&opts.listAlgos, "known-algorithms", false, "list the values --algorithm accepts and exit")
	flags.BoolP("version", "V", false, "print the vash version and exit")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug diagnostics")

	cmd.AddCommand(newKnownAlgorithmsCmd())
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newGalleryCmd(func() *logrus.Logger { return log }))
	cmd.AddCommand(newBenchCmd())
	cmd.AddCommand(newSaltCmd())
	return cmd
}

func newKnownAlgorithmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "known-algorithms",
		Short: "List the values --algorithm accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printKnownAlgorithms(cmd.OutOrStdout())
		},
	}
}

func printKnownAlgorithms(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Known Algorithms:"); err != nil {
		return err
	}
	for _, info := range vash.KnownAlgorithms() {
		line := "\t" + string(info.Name)
		if info.Deprecated {
			line += "\t(deprecated)"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the vash version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), vash.Version)
			return err
		},
	}
}

func runRender(cmd *cobra.Command, opts *renderOptions, log *logrus.Logger) error {
	if opts.algorithm == "" {
		return errors.Wrap(errUsage, "-a/--algorithm must be set")
	}
	algo, err := vash.ParseAlgorithm(opts.algorithm)
	if err != nil {
		return err
	}

	in, err := resolveInputs(cmd.InOrStdin(), algo, opts)
	if err != nil {
		return err
	}
	defer in.Close()

	op, err := vash.NewOutputParameters(opts.output, opts.format, opts.width, opts.height)
	if err != nil {
		return err
	}
	stdout := cmd.OutOrStdout()
	if op.IsStdout() && isTerminal(stdout) {
		return errors.Wrap(errUsage, "refusing to write a binary image to a terminal")
	}

	tp, err := vash.NewTreeParameters(algo, in.salt, in.data)
	if err != nil {
		return err
	}
	tree, err := vash.NewTree(tp)
	if err != nil {
		return err
	}
	tree.SetLogger(log)

	stats := tree.Stats()
	log.WithFields(logrus.Fields{
		"algorithm": algo,
		"nodes":     stats.Nodes,
		"depth":     stats.Depth,
		"values":    stats.Values,
	}).Debug("tree built")

	if opts.debugTree {
		if err := tree.Dump(cmd.ErrOrStderr()); err != nil {
			return err
		}
	}
	if opts.debugEntropy {
		log.Infof("entropy used: %d bits", stats.EntropyUsed)
	}

	ip, err := vash.NewImageParameters(op.Width, op.Height)
	if err != nil {
		return err
	}
	tree.SetGenerationParameters(ip)
	pix, err := tree.GenerateCurrentFrame()
	if err != nil {
		return err
	}

	if err := writeImage(stdout, op, pix); err != nil {
		return err
	}
	if !op.IsStdout() {
		log.Debugf("wrote %s", op.Filename)
	}

	if opts.preview {
		return runPreview(tree, log)
	}
	return nil
}

func writeImage(stdout io.Writer, op *vash.OutputParameters, pix []byte) error {
	if op.IsStdout() {
		return vash.EncodeImage(stdout, op.Format, pix, op.Width, op.Height)
	}

	path, err := expandPath(op.Filename)
	if err != nil {
		return err
	}
	fd, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if err := vash.EncodeImage(fd, op.Format, pix, op.Width, op.Height); err != nil {
		fd.Close()
		return err
	}
	return errors.Wrapf(fd.Close(), "closing %s", path)
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w interface{}) bool {
	fd, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(fd.Fd()) || isatty.IsCygwinTerminal(fd.Fd())
}
