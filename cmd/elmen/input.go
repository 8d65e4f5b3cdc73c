package main

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vango-dev/elmen/internal/errors"
	"github.com/vango-dev/elmen/pkg/markup"
)

// stdinName is the location file name used for descriptions read from "-".
const stdinName = "<stdin>"

// readDescription reads and decodes the element description at path, or
// standard input when path is "-".
func readDescription(cmd *cobra.Command, path string) (*markup.Element, error) {
	var (
		data []byte
		err  error
		name = path
	)
	if path == "-" {
		name = stdinName
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.New(errors.CodeInputNotFound).
			WithDetail("Cannot read " + name).
			Wrap(err)
	}

	el, err := markup.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, decodeError(err, name, data)
	}
	return el, nil
}

// decodeError converts a Decode error, locating syntax errors in data.
func decodeError(err error, name string, data []byte) *errors.ElmenError {
	if stderrors.Is(err, io.ErrUnexpectedEOF) || stderrors.Is(err, io.EOF) {
		line, col := errors.Offset(data, int64(len(data)))
		return errors.New(errors.CodeMarkupSyntax).
			WithDetail("The description ends before the element is complete.").
			Wrap(err).
			WithLocation(name, line, col)
	}

	e := errors.FromBuild(err, errors.CodeMarkupInvalid)
	if offset, ok := errors.SyntaxOffset(err); ok {
		line, col := errors.Offset(data, offset)
		e = e.WithLocation(name, line, col)
	}
	return e
}
