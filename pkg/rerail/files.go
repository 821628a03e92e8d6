package rerail

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
)

// LoadFile reads and loads the map file at path.
func LoadFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data)
}

// SaveFile writes the map to path in the current format.
func (m *Map) SaveFile(path string) error {
	data, err := m.Save()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// MapFile is a map loaded by LoadFiles.
type MapFile struct {
	Path string
	Map  *Map
}

// LoadOptions controls LoadFiles.
type LoadOptions struct {
	// Parallel loads files on several goroutines.
	Parallel bool

	// Workers is the number of loader goroutines. If 0, defaults to
	// runtime.NumCPU().
	Workers int

	// SkipErrors keeps loading after a file fails; failures are collected.
	// When false, the first failure is returned alone.
	SkipErrors bool

	// Progress, if set, is called after each file with the number of files
	// done so far.
	Progress func(loaded, total int)

	// ErrorLog, if set, receives one line per failed file.
	ErrorLog io.Writer
}

// DefaultLoadOptions returns parallel loading that skips failed files.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Parallel:   true,
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
	}
}

// LoadFiles loads many map files. Loaded maps are returned in the order of
// paths; errors name the file they belong to.
func LoadFiles(paths []string, opts LoadOptions) ([]MapFile, []error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if !opts.Parallel {
		return loadFilesSerial(paths, opts)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(paths))

	type result struct {
		index int
		m     *Map
		err   error
	}
	jobs := make(chan int, len(paths))
	results := make(chan result, len(paths))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				m, err := LoadFile(paths[i])
				results <- result{index: i, m: m, err: err}
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	go func() {
		wg.Wait()
		close(results)
	}()

	maps := make([]*Map, len(paths))
	var errs []error
	loaded := 0
	for r := range results {
		loaded++
		if opts.Progress != nil {
			opts.Progress(loaded, len(paths))
		}
		if r.err != nil {
			err := fmt.Errorf("%s: %w", paths[r.index], r.err)
			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "error loading map: %v\n", err)
			}
			if !opts.SkipErrors {
				// the remaining workers drain into the buffered channel
				return nil, []error{err}
			}
			errs = append(errs, err)
			continue
		}
		maps[r.index] = r.m
	}

	var out []MapFile
	for i, m := range maps {
		if m != nil {
			out = append(out, MapFile{Path: paths[i], Map: m})
		}
	}
	return out, errs
}

func loadFilesSerial(paths []string, opts LoadOptions) ([]MapFile, []error) {
	var out []MapFile
	var errs []error
	for i, path := range paths {
		m, err := LoadFile(path)
		if opts.Progress != nil {
			opts.Progress(i+1, len(paths))
		}
		if err != nil {
			err = fmt.Errorf("%s: %w", path, err)
			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "error loading map: %v\n", err)
			}
			if !opts.SkipErrors {
				return nil, []error{err}
			}
			errs = append(errs, err)
			continue
		}
		out = append(out, MapFile{Path: path, Map: m})
	}
	return out, errs
}
