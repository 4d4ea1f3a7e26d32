// Package batch renders many scene files concurrently with a worker pool.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"cg-raster/internal/canvas"
	"cg-raster/internal/config"
	"cg-raster/internal/scene"
)

// Config holds the shared settings of one batch run.
type Config struct {
	Workers int
	// WebP additionally writes a lossless .webp next to each .bmp.
	WebP bool
	// Progress enables the periodic rate report on stdout.
	Progress bool
}

// Result holds the outcome of rendering one scene file.
type Result struct {
	Path    string
	OutPath string
	Err     error
}

// Run renders all scene files using a worker pool and returns one result per
// input, in input order.
func Run(cfg Config, paths []string) []Result {
	total := len(paths)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	done := make(chan struct{})
	if cfg.Progress {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						fmt.Printf("  [%d/%d] %.1f scenes/sec\n", p, total, float64(p)/elapsed)
					}
				}
			}
		}()
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	pathChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range pathChan {
				results[idx] = processScene(cfg, paths[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range paths {
		pathChan <- i
	}
	close(pathChan)

	wg.Wait()
	close(done)

	return results
}

func processScene(cfg Config, path string) Result {
	res := Result{Path: path}

	sceneCfg, err := config.Load(path)
	if err != nil {
		res.Err = err
		return res
	}

	img, err := scene.Render(sceneCfg)
	if err != nil {
		res.Err = err
		return res
	}
	if img.Empty() {
		// Empty projected bounds are not an error; there is just nothing to
		// write.
		return res
	}

	res.OutPath = replaceExt(path, ".bmp")
	if err := writeBMP(res.OutPath, img); err != nil {
		res.Err = err
		return res
	}

	if cfg.WebP {
		if err := writeWebP(replaceExt(path, ".webp"), img); err != nil {
			res.Err = err
			return res
		}
	}
	return res
}

// replaceExt swaps the path's extension, appending if there is none.
func replaceExt(path, ext string) string {
	old := filepath.Ext(path)
	return strings.TrimSuffix(path, old) + ext
}

func writeBMP(path string, img *canvas.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := canvas.EncodeBMP(f, img); err != nil {
		return fmt.Errorf("bmp encode %s: %w", path, err)
	}
	return f.Close()
}

func writeWebP(path string, img *canvas.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := nativewebp.Encode(f, img.ToNRGBA(), nil); err != nil {
		return fmt.Errorf("webp encode %s: %w", path, err)
	}
	return f.Close()
}
