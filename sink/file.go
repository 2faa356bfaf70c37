package sink

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/tencent-go/avrogen/errx"
	"github.com/tencent-go/avrogen/util"
)

// FileSink writes <Dir>/<FileName(Name)>. Two schemas with different full names
// mapping to the same file are an error.
type FileSink struct {
	Dir string

	mu      sync.Mutex
	written map[string]string
}

func (s *FileSink) Write(_ context.Context, o Output) errx.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	name := FileName(o.Name)
	if prev, ok := s.written[name]; ok && prev != o.FullName {
		return errx.Validation.WithMsgf("%s and %s both map to %s", prev, o.FullName, name).Err()
	}
	if s.written == nil {
		s.written = map[string]string{}
	}
	s.written[name] = o.FullName

	target, err := util.WriteFile(s.Dir, util.DataFile{Name: name, Data: o.Text})
	if err != nil {
		return err
	}
	if abs, e := filepath.Abs(target); e == nil {
		target = abs
	}
	logrus.WithField("schema", o.FullName).Infof("avro schema written to %s", target)
	return nil
}

// WriterSink prints schema texts one after another.
type WriterSink struct {
	mu sync.Mutex
	W  io.Writer
}

func (s *WriterSink) Write(_ context.Context, o Output) errx.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := fmt.Fprintf(s.W, "%s\n", o.Text); err != nil {
		return errx.IO.WithCause(err).Err()
	}
	return nil
}

// ZipSink collects schemas into an archive laid out by namespace.
type ZipSink struct {
	mu    sync.Mutex
	files []util.DataFile
}

func (s *ZipSink) Write(_ context.Context, o Output) errx.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = append(s.files, util.DataFile{
		Name: FileName(o.Name),
		Dir:  namespaceDir(o.FullName),
		Data: o.Text,
	})
	return nil
}

func (s *ZipSink) Bytes() ([]byte, errx.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return util.ZipFilesBytes(s.files)
}

// Save writes the archive to path.
func (s *ZipSink) Save(path string) errx.Error {
	data, err := s.Bytes()
	if err != nil {
		return err
	}
	if e := os.WriteFile(path, data, 0o644); e != nil {
		return errx.IO.WithMsgf("write %s", path).WithCause(e).Err()
	}
	logrus.Infof("avro schemas archived to %s", path)
	return nil
}
