package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/esimov/seamcarve"
	"github.com/esimov/seamcarve/utils"
)

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

const usage = "Usage: seamcarve /path/to/img new_width new_height"

// config holds the validated command line options.
type config struct {
	src, dst   string
	width      int
	height     int
	percentage bool
	square     bool
	scale      bool
	strict     bool
	verbose    bool
}

// parseConfig reads the command line, program name excluded. Both the positional
// form (source, width, height) and the flag form are accepted.
func parseConfig(args []string, output io.Writer) (*config, error) {
	cfg := &config{}
	fs := flag.NewFlagSet("seamcarve", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, HelpBanner, Version)
		fmt.Fprintf(output, "%s\n   or: seamcarve [flags]\n\n", usage)
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.src, "in", pipeName, "Source image, file path, URL or - for stdin")
	fs.StringVar(&cfg.dst, "out", "", "Destination image, defaults to <source>_carved.<ext>")
	fs.IntVar(&cfg.width, "width", 0, "New width")
	fs.IntVar(&cfg.height, "height", 0, "New height")
	fs.BoolVar(&cfg.percentage, "perc", false, "Reduce image by percentage")
	fs.BoolVar(&cfg.square, "square", false, "Reduce image to square dimensions")
	fs.BoolVar(&cfg.scale, "scale", false, "Proportional scaling before carving")
	fs.BoolVar(&cfg.strict, "strict", false, "Refuse to enlarge the image")
	fs.BoolVar(&cfg.verbose, "v", false, "Verbose logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch rest := fs.Args(); {
	case len(rest) >= 3:
		cfg.src = rest[0]
		w, err := strconv.ParseUint(rest[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid width %q: %w", rest[1], err)
		}
		h, err := strconv.ParseUint(rest[2], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid height %q: %w", rest[2], err)
		}
		if w == 0 || h == 0 {
			return nil, fmt.Errorf("invalid size %dx%d: %w", w, h, seamcarve.ErrBounds)
		}
		cfg.width, cfg.height = int(w), int(h)
	case len(rest) > 0:
		return nil, errors.New(usage)
	case cfg.width == 0 && cfg.height == 0 && !cfg.percentage && !cfg.square:
		return nil, errors.New(usage)
	}

	if cfg.width < 0 || cfg.height < 0 {
		return nil, fmt.Errorf("negative size %dx%d", cfg.width, cfg.height)
	}

	if cfg.dst == "" {
		cfg.dst = outfile(cfg.src)
	}
	if cfg.dst != pipeName {
		ext := filepath.Ext(cfg.dst)
		if !isValidExtension(ext, validExtensions) {
			return nil, fmt.Errorf("%v file type not supported", ext)
		}
	}
	return cfg, nil
}

// Supported files
var validExtensions = []string{".jpg", ".png", ".jpeg", ".bmp", ".gif", ".tif", ".tiff"}

// outfile derives the destination name from the source: the stem is suffixed with _carved.
// Downloaded images are written to the working directory.
func outfile(src string) string {
	if src == pipeName {
		return pipeName
	}
	if utils.IsValidUrl(src) {
		u, _ := url.Parse(src)
		src = path.Base(u.Path)
		if src == "/" || src == "." {
			src = "image.jpg"
		}
	}
	ext := filepath.Ext(src)
	stem := strings.TrimSuffix(src, ext)
	if !isValidExtension(ext, validExtensions) {
		// Sources such as WebP are decoded but written back as JPEG.
		ext = ".jpg"
	}
	return stem + "_carved" + ext
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	for _, ex := range extensions {
		if ex == strings.ToLower(ext) {
			return true
		}
	}
	return false
}
