package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"FormatKit/bmp"
	"FormatKit/config"
	"FormatKit/deffile"
	"FormatKit/fsutil"
	"FormatKit/textenc"
)

// run executes one command, writing its report to w.
func run(w io.Writer, cfg config.Config, command string, args []string) error {
	switch command {
	case "info":
		if len(args) != 1 {
			return fmt.Errorf("usage: info <file.bmp>")
		}
		return runInfo(w, args[0])
	case "convert":
		if len(args) != 2 && len(args) != 3 {
			return fmt.Errorf("usage: convert <in.bmp> <out.bmp> [bpp]")
		}
		bpp := 0
		if len(args) == 3 {
			n, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid bits per pixel '%s'", args[2])
			}
			bpp = n
		}
		return runConvert(w, args[0], args[1], bpp)
	case "new":
		if len(args) != 2 {
			return fmt.Errorf("usage: new <file.def> <out.bmp>")
		}
		return runNew(w, cfg, args[0], args[1])
	case "tokens":
		return runTokens(w, cfg, args)
	case "walk":
		return runWalk(w, args)
	default:
		return fmt.Errorf("unknown command '%s'", command)
	}
}

func runInfo(w io.Writer, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	var fh bmp.FileHeader
	var ih bmp.InfoHeader
	if err := fh.Read(f); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	if err := ih.Read(f); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	// Load checks the rest of the file.
	b, err := bmp.Load(filename)
	if err != nil {
		return err
	}
	order := "top-down"
	if ih.Height > 0 {
		order = "bottom-up"
	}
	fmt.Fprintf(w, "file:      %s (%d bytes, pixels at %d)\n", filename, fh.FileSize, fh.DataOffset)
	fmt.Fprintf(w, "size:      %d x %d\n", b.Width, b.Height)
	fmt.Fprintf(w, "depth:     %d bits per pixel\n", ih.BitsPerPixel)
	fmt.Fprintf(w, "stride:    %d bytes\n", b.Stride)
	fmt.Fprintf(w, "row order: %s\n", order)
	if b.BytesPerPixel == 1 {
		fmt.Fprintf(w, "palette:   %d colors\n", len(b.Palette))
	}
	return nil
}

// runConvert rewrites in as out with bpp bits per pixel, or at the
// original depth when bpp is 0.
func runConvert(w io.Writer, in, out string, bpp int) error {
	src, err := bmp.Load(in)
	if err != nil {
		return err
	}
	defer src.Release()

	bytesPerPixel := src.BytesPerPixel
	if bpp != 0 {
		if bpp%8 != 0 {
			return fmt.Errorf("%w: %d bits per pixel", bmp.ErrUnsupportedFormat, bpp)
		}
		bytesPerPixel = bpp / 8
	}
	dst, err := bmp.FromImage(src.Image(), bytesPerPixel)
	if err != nil {
		return err
	}
	if err := fsutil.EnsureDir(filepath.Dir(out)); err != nil {
		return err
	}
	if err := dst.Save(out); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %dx%d, %d bits per pixel\n", out, dst.Width, dst.Height, dst.BytesPerPixel*8)
	return nil
}

// imageDef holds the keys of a definition file that runNew reads besides
// the dimensions, which may be expressions.
type imageDef struct {
	BPP     int    `mapstructure:"bpp"`
	Pattern string `mapstructure:"pattern"`
	Fill    uint8  `mapstructure:"fill"`
}

func runNew(w io.Writer, cfg config.Config, defFile, out string) error {
	doc, err := deffile.Load(defFile, cfg)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(cfg.Defaults))
	for k := range cfg.Defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		doc.SetDefault(k, cfg.Defaults[k])
	}

	width, err := evalInt(doc, "width")
	if err != nil {
		return err
	}
	height, err := evalInt(doc, "height")
	if err != nil {
		return err
	}
	var def imageDef
	if err := doc.Decode(&def); err != nil {
		return err
	}

	b, err := bmp.New(width, height, def.BPP, 0)
	if err != nil {
		return err
	}
	if def.BPP == 1 {
		b.Palette = bmp.GrayscalePalette()
	}
	if err := paint(b, def); err != nil {
		return err
	}
	if err := fsutil.EnsureDir(filepath.Dir(out)); err != nil {
		return err
	}
	if err := b.Save(out); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %dx%d, %d bits per pixel\n", out, b.Width, b.Height, b.BytesPerPixel*8)
	return nil
}

func evalInt(doc *deffile.Document, key string) (int, error) {
	v, err := doc.Eval(key)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, fmt.Errorf("%s must be a whole number, got %g", key, v)
	}
	return int(v), nil
}

// paint fills b with gray: a single level for the solid pattern, or a
// gradient from black at the top to the fill level at the bottom.
func paint(b *bmp.Bitmap, def imageDef) error {
	var level func(y int) uint8
	switch strings.ToLower(def.Pattern) {
	case "", "solid":
		level = func(int) uint8 { return def.Fill }
	case "gradient":
		level = func(y int) uint8 {
			if b.Height < 2 {
				return def.Fill
			}
			return uint8(int(def.Fill) * y / (b.Height - 1))
		}
	default:
		return fmt.Errorf("unknown pattern '%s'", def.Pattern)
	}

	for y := range b.Height {
		v := level(y)
		for x := range b.Width {
			px := b.Pix[b.PixelOffset(x, y):][:b.BytesPerPixel]
			for i := range px {
				px[i] = v
			}
			if b.BytesPerPixel == 4 {
				px[3] = 0xff
			}
		}
	}
	return nil
}

func runTokens(w io.Writer, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("tokens", flag.ContinueOnError)
	fs.SetOutput(w)
	codePage := fs.Int("cp", 0, "Windows code page of the file, overrides the configured encoding")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: tokens [-cp N] <file>")
	}
	filename := fs.Arg(0)

	var doc *deffile.Document
	var err error
	if *codePage != 0 {
		var data []byte
		data, err = fsutil.ReadFile(filename)
		if err != nil {
			return err
		}
		data, err = textenc.ToUTF8(data, textenc.ForCodePage(*codePage))
		if err != nil {
			return err
		}
		doc, err = deffile.Parse(data, cfg.Parser)
	} else {
		doc, err = deffile.Load(filename, cfg)
	}
	if err != nil {
		return err
	}

	for _, e := range doc.Entries {
		fmt.Fprintf(w, "%4d  %s", e.Line, e.Key)
		for _, a := range e.Args {
			fmt.Fprintf(w, " %q", a)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func runWalk(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("walk", flag.ContinueOnError)
	fs.SetOutput(w)
	recursive := fs.Bool("r", false, "Descend into subdirectories")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: walk [-r] <dir>")
	}

	root := fs.Arg(0)
	count := 0
	for entry, err := range fsutil.Walk(root, *recursive) {
		if err != nil && entry.Path == root {
			return err
		}
		if err != nil {
			log.Printf("Warning: %s: %v", entry.Path, err)
			continue
		}
		ext := fsutil.Extension(entry.Path)
		if ext == "" {
			ext = "-"
		}
		fmt.Fprintf(w, "%10d  %-5s %s\n", entry.Info.Size(), ext, entry.Path)
		count++
	}
	fmt.Fprintf(w, "%d file(s)\n", count)
	return nil
}
