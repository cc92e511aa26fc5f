package main

import (
	"fmt"
	"io"
	"os"

	"github.com/integrii/flaggy"
	"github.com/sirupsen/logrus"

	"github.com/seekfs/zfile"
)

var version = "unversioned"

var (
	skip      int64
	rewind    = false
	debugging = false
	path      string
)

func main() {
	flaggy.SetName("zcat")
	flaggy.SetDescription("Write a gzip- or zstd-compressed file to stdout, passing other files through")

	flaggy.Int64(&skip, "s", "skip", "Skip this many decompressed bytes before writing")
	flaggy.Bool(&rewind, "r", "rewind", "Read the stream twice, rewinding in between")
	flaggy.Bool(&debugging, "d", "debug", "Enable debug logging")
	flaggy.AddPositionalValue(&path, "file", 1, true, "File to read")
	flaggy.SetVersion(version)

	flaggy.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if debugging {
		log.SetLevel(logrus.DebugLevel)
	}

	f, err := zfile.OpenFile(path, &zfile.Config{Logger: log})
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	if f.Compressed() {
		log.WithField("format", string(f.Format())).Debug("decompressing")
	}

	if err := dump(f); err != nil {
		log.Fatal(err)
	}
	if rewind {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			log.Fatal(err)
		}
		if err := dump(f); err != nil {
			log.Fatal(err)
		}
	}

	for _, w := range f.Warnings() {
		fmt.Fprintf(os.Stderr, "zcat: warning: %v\n", w)
	}
}

func dump(f *zfile.File) error {
	if skip > 0 {
		if _, err := f.Seek(skip, io.SeekStart); err != nil {
			return err
		}
	}
	_, err := io.Copy(os.Stdout, f)
	return err
}
