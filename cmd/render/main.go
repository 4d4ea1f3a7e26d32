// render - offline scene renderer
//
// Reads INI scene descriptions and writes 24-bit BMP images next to them.
// With no arguments, scene paths are read line by line from a file named
// "filelist" in the working directory.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"

	"cg-raster/internal/batch"
	"cg-raster/internal/canvas"
)

func main() {
	workers := flag.Int("workers", runtime.NumCPU(), "Number of worker goroutines")
	webp := flag.Bool("webp", false, "Also write a lossless WebP next to each BMP")
	quiet := flag.Bool("quiet", false, "Suppress progress output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: render [options] [scene.ini ...]\n\n")
		fmt.Fprintf(os.Stderr, "Without arguments, paths are read from ./filelist.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		var err error
		paths, err = readFileList("filelist")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if len(paths) == 0 {
		fmt.Println("No scenes to render.")
		return
	}

	results := batch.Run(batch.Config{
		Workers:  *workers,
		WebP:     *webp,
		Progress: !*quiet && len(paths) > 1,
	}, paths)

	exit := 0
	for _, r := range results {
		if r.Err == nil {
			if r.OutPath == "" {
				fmt.Printf("Could not generate image for %s\n", r.Path)
			}
			continue
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
		if errors.Is(r.Err, canvas.ErrOutOfMemory) {
			exit = 100
		} else if exit == 0 {
			exit = 1
		}
	}
	os.Exit(exit)
}

func readFileList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths, scanner.Err()
}
