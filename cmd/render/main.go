/*
DESCRIPTION
  render is a headless command-line front-end to the pixelpipe
  rendering pipeline: it loads a source image, builds a pipeline over
  the compiled-in module catalog, optionally applies parameter overrides,
  and writes the rendered result to disk. It generalises rv's "netsender
  client wraps a library" shape into "CLI wraps a library", keeping the
  same lumberjack file-rotated logging setup and the same
  flag/log/os.Exit structure.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

// Package main implements the render command-line tool.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/coreos/go-systemd/daemon"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/rawforge/pixelpipe/iop"
	"github.com/rawforge/pixelpipe/iop/modules"
	"github.com/rawforge/pixelpipe/params"
	"github.com/rawforge/pixelpipe/pipeline"
	"github.com/rawforge/pixelpipe/pipeline/config"
	"github.com/rawforge/pixelpipe/pixel"
)

// Logging configuration, mirroring the teacher CLI's lumberjack setup.
const (
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
)

const pkg = "render: "

func main() {
	in := flag.String("in", "", "source image path (.praw raw mosaic, or any stdlib-decodable format)")
	out := flag.String("out", "out.png", "output PNG path")
	scale := flag.Float64("scale", 1, "render scale factor")
	region := flag.String("region", "", "x,y,w,h sub-region to render; empty renders the full image")
	setParams := flag.String("set", "", "comma-separated op.field=value overrides, e.g. exposure.ev=1.5")
	disable := flag.String("disable", "", "comma-separated op names to disable")
	enable := flag.String("enable", "", "comma-separated op names to enable in addition to the defaults")
	logPath := flag.String("log", "", "log file path; empty logs to stderr only")
	histogram := flag.String("histogram", "", "path to write a per-channel luminance histogram PNG alongside the render")
	watch := flag.String("watch", "", "watch a directory and re-render any new image dropped into it")
	daemonMode := flag.Bool("daemon", false, "notify systemd (sd_notify) once start-up is complete")
	flag.Parse()

	log := newLogger(*logPath)

	if *daemonMode {
		if _, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
			log.Warning(pkg+"sd_notify failed", "error", err.Error())
		}
	}

	if *watch != "" {
		runWatch(log, *watch, *out, *histogram, *scale, *region, *setParams, *disable, *enable)
		return
	}

	if *in == "" {
		log.Fatal(pkg + "missing -in")
	}
	if err := renderOnce(log, *in, *out, *histogram, *scale, *region, *setParams, *disable, *enable); err != nil {
		log.Fatal(pkg+"render failed", "error", err.Error())
	}
}

func newLogger(path string) logging.Logger {
	var w io.Writer = os.Stderr
	if path != "" {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   path,
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackup,
			MaxAge:     logMaxAge,
		})
	}
	return logging.New(logging.Info, w, true)
}

// runWatch renders every file fsnotify reports as created within dir,
// writing results alongside out with the source file's base name.
func runWatch(log logging.Logger, dir, out, histogram string, scale float64, region, setParams, disable, enable string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatal(pkg+"could not create watcher", "error", err.Error())
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		log.Fatal(pkg+"could not watch directory", "error", err.Error())
	}
	log.Info("watching for new images", "dir", dir)
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Create == 0 {
				continue
			}
			base := strings.TrimSuffix(filepath.Base(ev.Name), filepath.Ext(ev.Name))
			dst := filepath.Join(filepath.Dir(out), base+".png")
			hist := ""
			if histogram != "" {
				hist = filepath.Join(filepath.Dir(histogram), base+"_histogram.png")
			}
			log.Info("rendering new file", "path", ev.Name)
			if err := renderOnce(log, ev.Name, dst, hist, scale, region, setParams, disable, enable); err != nil {
				log.Error(pkg+"render failed", "path", ev.Name, "error", err.Error())
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Error(pkg+"watcher error", "error", err.Error())
		}
	}
}

func renderOnce(log logging.Logger, in, out, histogram string, scale float64, region, setParams, disable, enable string) error {
	catalog := iop.NewCatalog()
	registry := params.NewRegistry()
	upgrades := params.NewUpgrades()
	if err := modules.RegisterAll(catalog, registry); err != nil {
		return fmt.Errorf("registering modules: %w", err)
	}
	if err := modules.RegisterUpgrades(upgrades); err != nil {
		return fmt.Errorf("registering upgrade chains: %w", err)
	}

	img, err := loadImage(in)
	if err != nil {
		return fmt.Errorf("loading image %q: %w", in, err)
	}

	cfg := config.Config{Logger: log}
	p, err := pipeline.Create(img, cfg, catalog, registry, upgrades, modules.DefaultEnabled)
	if err != nil {
		return fmt.Errorf("creating pipeline: %w", err)
	}
	defer p.Free()

	if err := applyOverrides(p, setParams, disable, enable); err != nil {
		return err
	}

	x, y, w, h := 0, 0, img.Width, img.Height
	if region != "" {
		x, y, w, h, err = parseRegion(region)
		if err != nil {
			return err
		}
	}

	result, err := p.RenderRegion(x, y, w, h, scale)
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}

	if histogram != "" {
		if err := writeHistogram(histogram, result); err != nil {
			log.Warning(pkg+"could not write histogram", "path", histogram, "error", err.Error())
		}
	}

	return writePNG(out, result.Pixels, result.Width, result.Height, result.Stride)
}

func applyOverrides(p *pipeline.Pipeline, setParams, disable, enable string) error {
	for _, op := range splitNonEmpty(disable) {
		if err := p.EnableModule(op, false); err != nil {
			return fmt.Errorf("disabling %q: %w", op, err)
		}
	}
	for _, op := range splitNonEmpty(enable) {
		if err := p.EnableModule(op, true); err != nil {
			return fmt.Errorf("enabling %q: %w", op, err)
		}
	}
	for _, kv := range splitNonEmpty(setParams) {
		opField, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("malformed -set entry %q, want op.field=value", kv)
		}
		op, field, ok := strings.Cut(opField, ".")
		if !ok {
			return fmt.Errorf("malformed -set entry %q, want op.field=value", kv)
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("malformed -set value %q: %w", kv, err)
		}
		if err := p.SetParamFloat(op, field, f); err != nil {
			return fmt.Errorf("setting %s.%s: %w", op, field, err)
		}
	}
	return nil
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseRegion(s string) (x, y, w, h int, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("region %q: want x,y,w,h", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, 0, 0, 0, fmt.Errorf("region %q: %w", s, err)
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}

// praw is this tool's own minimal mosaic raw container: a fixed header
// followed by little-endian uint16 mosaic samples, used when no real
// camera raw decoder is wired in. It exists purely so this CLI has a
// loadable mosaic format to exercise the raw side of the pipeline.
const prawMagic = "PRAW0001"

func loadImage(path string) (*pixel.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".praw") {
		return loadPraw(path)
	}
	return loadStdlibImage(path)
}

func loadPraw(path string) (*pixel.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header := make([]byte, len(prawMagic)+4+4+4+2)
	if _, err := io.ReadFull(f, header); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if string(header[:len(prawMagic)]) != prawMagic {
		return nil, fmt.Errorf("not a praw file")
	}
	off := len(prawMagic)
	width := int(binary.LittleEndian.Uint32(header[off:]))
	off += 4
	height := int(binary.LittleEndian.Uint32(header[off:]))
	off += 4
	whiteRaw := binary.LittleEndian.Uint32(header[off:])
	off += 4
	cfaCode := header[off]

	pix, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading pixel data: %w", err)
	}

	filters := pixel.Filters{Kind: pixel.FilterBayer, Mask: bayerMaskFromCode(cfaCode)}
	return &pixel.Image{
		Width:          width,
		Height:         height,
		BytesPerSample: 2,
		Filters:        filters,
		RawWhitePoint:  float32(whiteRaw),
		AsShot:         [4]float32{1, 1, 1, 1},
		CameraToXYZ:    [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1},
		Pix:            pix,
	}, nil
}

// bayerMaskFromCode maps a single-byte CFA phase code (0=RGGB, 1=BGGR,
// 2=GRBG, 3=GBRG) to the packed 2-bits-per-cell mask Filters.At expects.
func bayerMaskFromCode(code byte) uint32 {
	switch code {
	case 1: // BGGR
		return 2<<0 | 1<<2 | 1<<4 | 0<<6
	case 2: // GRBG
		return 1<<0 | 0<<2 | 2<<4 | 1<<6
	case 3: // GBRG
		return 1<<0 | 2<<2 | 0<<4 | 1<<6
	default: // RGGB
		return 0<<0 | 1<<2 | 1<<4 | 2<<6
	}
}

func loadStdlibImage(path string) (*pixel.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, src, bounds.Min, draw.Src)

	pix := make([]byte, w*h*3*2)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := rgba.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			di := (y*w + x) * 3 * 2
			binary.LittleEndian.PutUint16(pix[di:], uint16(rgba.Pix[si])*257)
			binary.LittleEndian.PutUint16(pix[di+2:], uint16(rgba.Pix[si+1])*257)
			binary.LittleEndian.PutUint16(pix[di+4:], uint16(rgba.Pix[si+2])*257)
		}
	}
	return &pixel.Image{
		Width:          w,
		Height:         h,
		BytesPerSample: 2,
		Channels:       3,
		CameraToXYZ:    [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1},
		Pix:            pix,
	}, nil
}

func writePNG(path string, pix []byte, w, h, stride int) error {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+w*4], pix[y*stride:y*stride+w*4])
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if strings.EqualFold(filepath.Ext(path), ".jpg") || strings.EqualFold(filepath.Ext(path), ".jpeg") {
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	}
	return png.Encode(f, img)
}
