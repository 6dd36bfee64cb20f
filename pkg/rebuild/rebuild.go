// Package rebuild decides whether a generated file has to be regenerated by
// comparing modification times. Nothing is persisted; every decision is made
// from the filesystem state at the time of the call.
package rebuild

import (
	"errors"
	"io/fs"
	"os"
	"time"
)

// ModTime returns the modification time of path, or the zero time if it does
// not exist.
func ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, nil
		}

		return time.Time{}, err
	}

	return info.ModTime(), nil
}

// NeedsRebuild reports whether output is missing or strictly older than newest.
func NeedsRebuild(output string, newest time.Time) (bool, error) {
	info, err := os.Stat(output)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}

		return false, err
	}

	return info.ModTime().Before(newest), nil
}

func Newest(times ...time.Time) time.Time {
	var newest time.Time
	for _, t := range times {
		if t.After(newest) {
			newest = t
		}
	}

	return newest
}
