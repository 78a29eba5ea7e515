package cpcimage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var imageExtensions = map[string]struct{}{
	".bmp":  {},
	".gif":  {},
	".jpeg": {},
	".jpg":  {},
	".png":  {},
}

func isImage(file string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(file))]
	return ok
}

type job struct {
	src, dst string
}

func (c *Converter) findImages(ctx context.Context, base, out string) (<-chan job, <-chan error, error) {
	jobs := make(chan job)
	errc := make(chan error, 1)
	go func() {
		defer close(jobs)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal image file
			if !info.Mode().IsRegular() || !isImage(file) {
				return nil
			}

			rel, err := filepath.Rel(base, file)
			if err != nil {
				return err
			}

			select {
			case jobs <- job{src: file, dst: filepath.Join(out, rel)}:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return jobs, errc, nil
}

func writeOutput(o Output, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(dst+".bin", o.Data(), 0o644); err != nil {
		return err
	}

	b, err := o.Palette().MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(dst+".json", b, 0o644)
}

func (c *Converter) imageWorker(ctx context.Context, in <-chan job, f Format) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for j := range in {
			o, err := c.ConvertFile(j.src, f)
			if err != nil {
				errc <- err
				return
			}

			if err := writeOutput(o, j.dst); err != nil {
				errc <- err
				return
			}

			c.logger.Printf("converted \"%s\" to \"%s.bin\"", j.src, j.dst)
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// ConvertDirectory converts every image below in and writes, for each, a
// .bin file with the data and a .json file with the palette to the same
// relative path below out. The source extension is kept, so a.png becomes
// a.png.bin and never collides with a.gif.
func (c *Converter) ConvertDirectory(in, out string, f Format) error {
	base, err := filepath.Abs(in)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	jobs, errc, err := c.findImages(ctx, base, out)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < max(c.workers, 1); i++ {
		errc, err := c.imageWorker(ctx, jobs, f)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
