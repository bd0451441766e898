package streaming

import (
	"io"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"
)

type progressFile struct {
	io.Reader
	f   *os.File
	bar *pb.ProgressBar
}

func (p *progressFile) Close() error {
	if p.bar != nil {
		p.bar.Finish()
	}
	return p.f.Close()
}

// OpenInput opens a map input file. When progress is not nil a byte counter
// for the file is drawn on it while the file is read.
func OpenInput(path string, progress io.Writer) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	if progress == nil {
		return f, nil
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	bar := pb.New64(stat.Size())
	bar.Set(pb.Bytes, true)
	bar.Set("prefix", filepath.Base(path)+" ")
	bar.SetWriter(progress)
	if err := bar.Err(); err != nil {
		f.Close()
		return nil, err
	}
	bar.Start()

	return &progressFile{Reader: bar.NewProxyReader(f), f: f, bar: bar}, nil
}
