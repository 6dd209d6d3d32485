package cli

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/heathj/htmltok/logging/logfields"
)

// openInput opens the file named by args, or stdin when args is empty or
// "-". The input is decoded to UTF-8 when --charset is set.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	var rc io.ReadCloser
	if len(args) == 0 || args[0] == "-" {
		rc = io.NopCloser(cmd.InOrStdin())
	} else {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "opening input")
		}
		log.WithField(logfields.Path, args[0]).Debug("Reading input file")
		rc = f
	}

	if charset == "" {
		return rc, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		rc.Close()
		return nil, errors.Wrapf(err, "unsupported charset %q", charset)
	}
	log.WithField(logfields.Charset, charset).Debug("Decoding input")
	return &decodedReader{
		Reader: transform.NewReader(rc, enc.NewDecoder()),
		closer: rc,
	}, nil
}

type decodedReader struct {
	io.Reader
	closer io.Closer
}

func (d *decodedReader) Close() error {
	return d.closer.Close()
}
