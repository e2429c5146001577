package linker

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// outputWriter appends one part of the image
type outputWriter interface {
	CopyBuf(l *Linker, buf *bytes.Buffer) error
}

type outputHeaderWriter struct{}

func (outputHeaderWriter) CopyBuf(l *Linker, buf *bytes.Buffer) error {
	hdr, err := BuildHeader(l)
	if err != nil {
		return err
	}
	buf.Write(hdr.Dump())
	return nil
}

type outputSectionWriter struct {
	Section Section
}

func (o outputSectionWriter) CopyBuf(l *Linker, buf *bytes.Buffer) error {
	if !o.Section.IsEmitted() {
		return nil
	}
	return l.walkSection(o.Section, func(tok *Token, section Section) error {
		code, err := tok.Bytecode()
		if err != nil {
			return err
		}
		fmt.Fprintf(l.Trace, "[%s] [%d] %s\n", section, tok.Addr(), tok)
		buf.Write(code)
		return nil
	})
}

// Build assembles header, text and data. bss is only counted in the header.
func Build(l *Linker) ([]byte, error) {
	writers := []outputWriter{outputHeaderWriter{}}
	for _, section := range Sections {
		writers = append(writers, outputSectionWriter{Section: section})
	}

	buf := bytes.Buffer{}
	for _, w := range writers {
		if err := w.CopyBuf(l, &buf); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// LinkImage runs every pass from scratch and returns the image.
func (l *Linker) LinkImage() ([]byte, error) {
	l.reset()

	passes := []func(*Linker) error{
		CalcAbsoluteAddr,
		CollectLabels,
		UnwindPointers,
	}
	for _, pass := range passes {
		if err := pass(l); err != nil {
			return nil, err
		}
	}
	return Build(l)
}

// Link writes the image to filename. Nothing is left at filename when a
// pass fails or the write does not complete.
func (l *Linker) Link(filename string) error {
	image, err := l.LinkImage()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "write %s", filename)
	}
	if _, err := tmp.Write(image); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "write %s", filename)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "write %s", filename)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return errors.Wrapf(err, "write %s", filename)
	}
	return nil
}
