// gallery.go
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/okavatti/vash/vash"
)

type galleryOptions struct {
	algorithm string
	count     int
	dir       string
	width     int
	height    int
	jobs      int
}

// galleryResult is the outcome for one key.
type galleryResult struct {
	Key       string
	Diversity float64
	Flat      bool
}

func newGalleryCmd(logger func() *logrus.Logger) *cobra.Command {
	opts := &galleryOptions{}
	cmd := &cobra.Command{
		Use:   "gallery [key...]",
		Short: "Render a numbered gallery of images and flag the flat ones",
		Long: `gallery renders the keys 0001..COUNT (or the numbers given as
arguments) into DIR as NNNN.png, writes each tree next to it as
NNNN-tree.txt and reports images that are nearly a single colour.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := galleryKeys(args, opts.count)
			if err != nil {
				return err
			}
			algo, err := vash.ParseAlgorithm(opts.algorithm)
			if err != nil {
				return err
			}
			results, err := renderGallery(algo, keys, opts, logger())
			if err != nil {
				return err
			}
			return printGallery(cmd, results)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.algorithm, "algorithm", "a", string(vash.Algorithm1Fast), "image generator algorithm")
	flags.IntVar(&opts.count, "count", 100, "number of keys when none are given")
	flags.StringVar(&opts.dir, "dir", "gallery", "output directory")
	flags.IntVarP(&opts.width, "width", "w", 256, "image width")
	flags.IntVarP(&opts.height, "height", "H", 128, "image height")
	flags.IntVarP(&opts.jobs, "jobs", "j", runtime.NumCPU(), "renders to run at once")
	return cmd
}

func galleryKeys(args []string, count int) ([]string, error) {
	if len(args) == 0 {
		if count < 1 {
			return nil, errors.Wrapf(errUsage, "count must be positive, got %d", count)
		}
		keys := make([]string, count)
		for i := range keys {
			keys[i] = fmt.Sprintf("%04d", i+1)
		}
		return keys, nil
	}

	keys := make([]string, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, errors.Wrapf(errUsage, "gallery key %q is not a number", arg)
		}
		keys[i] = fmt.Sprintf("%04d", n)
	}
	return keys, nil
}

// renderGallery renders every key on its own tree and image parameters.
// Results come back sorted by key.
func renderGallery(algo vash.Algorithm, keys []string, opts *galleryOptions, log logrus.FieldLogger) ([]galleryResult, error) {
	dir, err := expandPath(opts.dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating %s", dir)
	}

	jobs := opts.jobs
	if jobs < 1 {
		jobs = 1
	}

	var (
		mu      sync.Mutex
		results = make([]galleryResult, 0, len(keys))
		g       errgroup.Group
	)
	g.SetLimit(jobs)

	for _, key := range keys {
		g.Go(func() error {
			res, err := renderGalleryKey(algo, key, dir, opts, log)
			if err != nil {
				return errors.Wrapf(err, "key %s", key)
			}
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Key < results[j].Key })
	return results, nil
}

func renderGalleryKey(algo vash.Algorithm, key, dir string, opts *galleryOptions, log logrus.FieldLogger) (galleryResult, error) {
	op, err := vash.NewOutputParameters(filepath.Join(dir, key+".png"), "", opts.width, opts.height)
	if err != nil {
		return galleryResult{}, err
	}

	pix, tree, err := vash.Render(algo, nil, bytes.NewReader([]byte(key)), op.Width, op.Height)
	if err != nil {
		return galleryResult{}, err
	}
	if err := writeImage(nil, op, pix); err != nil {
		return galleryResult{}, err
	}

	var dump bytes.Buffer
	if err := tree.Dump(&dump); err != nil {
		return galleryResult{}, err
	}
	treePath := filepath.Join(dir, key+"-tree.txt")
	if err := os.WriteFile(treePath, dump.Bytes(), 0o644); err != nil {
		return galleryResult{}, errors.Wrapf(err, "writing %s", treePath)
	}

	res := galleryResult{Key: key, Diversity: vash.Diversity(pix), Flat: vash.IsFlat(pix)}
	log.WithFields(logrus.Fields{
		"key":       key,
		"diversity": fmt.Sprintf("%.3f", res.Diversity),
	}).Debug("rendered gallery image")
	if res.Flat {
		log.Warnf("%s is flat", key)
	}
	return res, nil
}

func printGallery(cmd *cobra.Command, results []galleryResult) error {
	out := cmd.OutOrStdout()
	flat := 0
	for _, res := range results {
		mark := 0
		if !res.Flat {
			mark = 1
		} else {
			flat++
		}
		if _, err := fmt.Fprintf(out, "%s %.4f %d\n", res.Key, res.Diversity, mark); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(out, "%d of %d images are flat\n", flat, len(results))
	return err
}
