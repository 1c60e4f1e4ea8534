// input.go
package main

import (
	"io"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	"github.com/okavatti/vash/vash"
)

// onceString is a string flag that may be given at most once.
type onceString struct {
	value string
	set   bool
}

func (o *onceString) String() string { return o.value }
func (o *onceString) Type() string   { return "string" }

func (o *onceString) Set(v string) error {
	if o.set {
		return errors.New("must only be set once")
	}
	o.value = v
	o.set = true
	return nil
}

// inputs holds the opened data stream and the normalised salt.
type inputs struct {
	data   io.Reader
	salt   []byte
	closer io.Closer
}

func (in *inputs) Close() error {
	if in.closer == nil {
		return nil
	}
	return in.closer.Close()
}

func expandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", errors.Wrapf(err, "expanding %s", path)
	}
	return expanded, nil
}

// resolveInputs checks the data and salt options against each other and
// opens them. Standard input is read for "-".
func resolveInputs(stdin io.Reader, algo vash.Algorithm, opts *renderOptions) (*inputs, error) {
	switch {
	case opts.data.set && opts.file.set:
		return nil, errors.Wrap(errUsage, "-d/--data and -f/--file must not both be set")
	case !opts.data.set && !opts.file.set:
		return nil, errors.Wrap(errUsage, "one of -d/--data or -f/--file must be set")
	}
	if opts.salt != "" && opts.saltFile != "" {
		return nil, errors.Wrap(errUsage, "a salt file and a salt literal must not both be given")
	}
	if opts.file.set && opts.saltFile != "" && opts.file.value == opts.saltFile {
		return nil, errors.Wrap(errUsage, "salt and data may not come from the same file")
	}

	var salt []byte
	switch {
	case opts.salt != "":
		var err error
		if salt, err = vash.DecodeSalt(algo, opts.salt); err != nil {
			return nil, err
		}
	case opts.saltFile != "":
		var err error
		if salt, err = readSaltFile(stdin, algo, opts.saltFile); err != nil {
			return nil, err
		}
	}

	in := &inputs{salt: salt}
	if opts.data.set {
		in.data = strings.NewReader(opts.data.value)
		return in, nil
	}

	if opts.file.value == vash.StdioName {
		in.data = stdin
		return in, nil
	}
	path, err := expandPath(opts.file.value)
	if err != nil {
		return nil, err
	}
	fd, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening data file")
	}
	in.data = fd
	in.closer = fd
	return in, nil
}

// readSaltFile reads at most the algorithm's salt size from name and pads
// a short read with zeros.
func readSaltFile(stdin io.Reader, algo vash.Algorithm, name string) ([]byte, error) {
	size, err := vash.SaltSizeForAlgorithm(algo)
	if err != nil {
		return nil, err
	}

	r := stdin
	if name != vash.StdioName {
		path, err := expandPath(name)
		if err != nil {
			return nil, err
		}
		fd, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "opening salt file")
		}
		defer fd.Close()
		r = fd
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, errors.Wrap(err, "reading salt file")
	}
	return buf, nil
}
