package linker

import (
	"os"

	"github.com/pkg/errors"
)

type File struct {
	Name    string
	Content []byte
}

func NewFile(filename string) (*File, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "read unit %s", filename)
	}
	return &File{
		Name:    filename,
		Content: content,
	}, nil
}
