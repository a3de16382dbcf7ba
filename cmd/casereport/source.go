package main

import (
	"os"
	"time"

	"github.com/rotisserie/eris"

	"github.com/supportops/casereport-go/pkg/casereport"
)

// source is an opened input file.
type source struct {
	casereport.Source
	file *os.File
}

func openSource(path, name string) (source, error) {
	f, err := os.Open(path)
	if err != nil {
		return source{}, eris.Wrapf(err, "open %s", path)
	}
	return source{Source: casereport.Source{Name: name, Reader: f}, file: f}, nil
}

func (s source) close() {
	if s.file != nil {
		s.file.Close()
	}
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, eris.Wrapf(err, "invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}
