package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/esimov/seamcarve"
	"github.com/esimov/seamcarve/utils"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const HelpBanner = `
┌─┐┌─┐┌─┐┌┬┐┌─┐┌─┐┬─┐┬  ┬┌─┐
└─┐├┤ ├─┤││││  ├─┤├┬┘└┐┌┘├┤
└─┘└─┘┴ ┴┴ ┴└─┘┴ ┴┴└─ └┘ └─┘

Content aware image resize.
    Version: %s

`

// Version indicates the current build version.
var Version string

func main() {
	log.SetFlags(0)

	cfg, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, utils.DecorateText(fmt.Sprintf("Problem parsing arguments: %v", err), utils.ErrorMessage))
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, utils.DecorateText(fmt.Sprintf("Application error: %v", err), utils.ErrorMessage))
		os.Exit(1)
	}
}

// run resizes the configured source image into the configured destination.
func run(cfg *config) error {
	logger := zap.NewNop()
	if cfg.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("unable to create the logger: %w", err)
		}
		logger = l
	}
	defer logger.Sync()

	proc := &seamcarve.Processor{
		NewWidth:   cfg.width,
		NewHeight:  cfg.height,
		Percentage: cfg.percentage,
		Square:     cfg.square,
		Scale:      cfg.scale,
		Strict:     cfg.strict,
		Logger:     logger,
	}

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ SEAMCARVE", utils.StatusMessage),
		utils.DecorateText("is resizing the image...", utils.DefaultMessage))
	spinner := utils.NewSpinner(spinnerText, time.Millisecond*200, true)

	src, dst, cleanup, err := pathToFile(cfg.src, cfg.dst)
	if err != nil {
		return err
	}
	defer cleanup()

	// Capture CTRL-C signal and restore the cursor visibility back.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signalChan)
	go func() {
		if _, ok := <-signalChan; ok {
			spinner.RestoreCursor()
			removeOutput(dst)
			os.Exit(1)
		}
	}()

	now := time.Now()
	spinner.Start()
	err = proc.Process(src, dst)
	if err != nil {
		spinner.StopMsg = fmt.Sprintf("%s %s\n",
			utils.DecorateText("⚡ SEAMCARVE", utils.StatusMessage),
			utils.DecorateText("resizing image failed... ✘", utils.ErrorMessage))
		spinner.Stop()
		removeOutput(dst)
		return err
	}
	spinner.StopMsg = fmt.Sprintf("%s %s\n",
		utils.DecorateText("⚡ SEAMCARVE", utils.StatusMessage),
		utils.DecorateText("the image has been resized successfully ✔", utils.SuccessMessage))
	spinner.Stop()

	if cfg.dst != pipeName {
		fmt.Fprintf(os.Stderr, "\nThe resized image has been saved as: %s\n",
			utils.DecorateText(filepath.Base(cfg.dst), utils.SuccessMessage))
	}
	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))

	return nil
}

// pathToFile converts the source and destination paths to readable and writable files.
// The returned cleanup function closes them and removes any downloaded temporary file.
func pathToFile(in, out string) (io.Reader, io.Writer, func(), error) {
	var (
		closers []func()
		src     io.Reader
		dst     io.Writer
	)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch {
	case utils.IsValidUrl(in):
		f, err := utils.DownloadImage(in)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load the source image: %w", err)
		}
		closers = append(closers, func() {
			f.Close()
			os.Remove(f.Name())
		})
		src = f
	case in == pipeName:
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	default:
		f, err := os.Open(in)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("unable to open the source file: %w", err)
		}
		closers = append(closers, func() { closeFile(f) })
		src = f
	}

	if out == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			cleanup()
			return nil, nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		f, err := os.OpenFile(out, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
		if err != nil {
			cleanup()
			return nil, nil, nil, fmt.Errorf("unable to create the destination file: %w", err)
		}
		closers = append(closers, func() { closeFile(f) })
		dst = f
	}
	return src, dst, cleanup, nil
}

func closeFile(f *os.File) {
	if err := f.Close(); err != nil {
		log.Printf("could not close the opened file: %v", err)
	}
}

// removeOutput deletes a partially written destination file.
func removeOutput(dst io.Writer) {
	if f, ok := dst.(*os.File); ok && f != os.Stdout {
		os.Remove(f.Name())
	}
}
