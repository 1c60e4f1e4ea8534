// preview.go
package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/okavatti/vash/vash"
)

type previewMode int

const (
	// previewBlocks draws two pixels per cell with upper half blocks.
	previewBlocks previewMode = iota
	// previewASCII draws one luminance glyph per cell.
	previewASCII
	numPreviewModes
)

func (m previewMode) String() string {
	if m == previewASCII {
		return "ascii"
	}
	return "blocks"
}

// asciiRamp runs from dark to bright.
var asciiRamp = []rune{' ', '.', ':', '^', '-', '=', '+', '*', 'o', 'O', 'Q', '0', '8', 'H', 'M', 'W', '$', '%', '&', '#', '@'}

func rampRune(luma float64) rune {
	if luma < 0 {
		luma = 0
	}
	if luma > 1 {
		luma = 1
	}
	return asciiRamp[int(luma*float64(len(asciiRamp)-1))]
}

// pixelAt returns the r,g,b of a packed B,G,R buffer.
func pixelAt(pix []byte, w, x, y int) (r, g, b int32) {
	i := (y*w + x) * 3
	return int32(pix[i+2]), int32(pix[i+1]), int32(pix[i])
}

// previewSize returns the render resolution that fills cols×rows cells in
// mode m, leaving the last row for the status line.
func previewSize(cols, rows int, m previewMode) (w, h int) {
	rows--
	if m == previewBlocks {
		return cols, rows * 2
	}
	return cols, rows
}

// drawImage paints a w×h packed buffer at the top left of s.
func drawImage(s tcell.Screen, pix []byte, w, h int, m previewMode) {
	switch m {
	case previewBlocks:
		for cy := 0; cy*2 < h; cy++ {
			for x := 0; x < w; x++ {
				tr, tg, tb := pixelAt(pix, w, x, cy*2)
				style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(tr, tg, tb))
				if cy*2+1 < h {
					br, bg, bb := pixelAt(pix, w, x, cy*2+1)
					style = style.Background(tcell.NewRGBColor(br, bg, bb))
				}
				s.SetContent(x, cy, '▀', nil, style)
			}
		}
	case previewASCII:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, g, b := pixelAt(pix, w, x, y)
				luma := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
				color := tcell.NewRGBColor(r, g, b)
				s.SetContent(x, y, rampRune(luma), nil, tcell.StyleDefault.Foreground(color))
			}
		}
	}
}

// previewFrame renders tree to fit s and draws it with a status line.
func previewFrame(s tcell.Screen, tree *vash.Tree, m previewMode) error {
	cols, rows := s.Size()
	w, h := previewSize(cols, rows, m)
	if w < vash.MinImageSize || h < vash.MinImageSize {
		drawText(s, 0, 0, tcell.StyleDefault, "terminal too small")
		return nil
	}

	ip, err := vash.NewImageParameters(w, h)
	if err != nil {
		return err
	}
	tree.SetGenerationParameters(ip)
	pix, err := tree.GenerateCurrentFrame()
	if err != nil {
		return err
	}
	drawImage(s, pix, w, h, m)

	status := fmt.Sprintf("vash %s | %dx%d | mode: %s | M:mode Q:quit",
		tree.Params().Algorithm(), w, h, m)
	drawText(s, 0, rows-1, tcell.StyleDefault.Foreground(tcell.ColorDarkGray), status)
	return nil
}

func runPreview(tree *vash.Tree, log logrus.FieldLogger) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "screen init failed")
	}
	if err := s.Init(); err != nil {
		return errors.Wrap(err, "screen start failed")
	}
	defer s.Fini()
	return previewLoop(s, tree, log)
}

// previewLoop redraws on resize and mode changes until the user quits.
// Only this goroutine touches the screen contents; the input handler
// reports through channels.
func previewLoop(s tcell.Screen, tree *vash.Tree, log logrus.FieldLogger) error {
	redraw := make(chan struct{}, 1)
	toggle := make(chan struct{}, 1)
	quit := make(chan struct{})

	signal := func(ch chan struct{}) {
		select {
		case ch <- struct{}{}:
		default:
		}
	}

	// Input handler
	go func() {
		defer close(quit)
		for {
			ev := s.PollEvent()
			switch ev := ev.(type) {
			case nil:
				return
			case *tcell.EventKey:
				switch ev.Key() {
				case tcell.KeyEscape, tcell.KeyCtrlC:
					return
				case tcell.KeyRune:
					switch ev.Rune() {
					case 'q', 'Q':
						return
					case 'm', 'M':
						signal(toggle)
					}
				}
			case *tcell.EventResize:
				signal(redraw)
			}
		}
	}()

	mode := previewBlocks
	signal(redraw)
	for {
		select {
		case <-quit:
			return nil
		case <-toggle:
			mode = (mode + 1) % numPreviewModes
		case <-redraw:
			s.Sync()
		}
		s.Clear()
		if err := previewFrame(s, tree, mode); err != nil {
			return err
		}
		s.Show()
		log.Debugf("preview redrawn in %s mode", mode)
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for i, r := range []rune(str) {
		s.SetContent(x+i, y, r, nil, style)
	}
}
