package opener

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"payout_dashboard/internal/ports"
)

// LocalOpener reads a payout file straight off disk, the common case
// for the CLI uploader.
type LocalOpener struct{}

func (l *LocalOpener) Open(_ context.Context, p string) (io.ReadCloser, ports.Meta, error) {
	st, err := os.Stat(p)
	if err != nil {
		return nil, ports.Meta{}, fmt.Errorf("file not found: %s", p)
	}
	if st.IsDir() {
		return nil, ports.Meta{}, fmt.Errorf("%s is a directory", p)
	}

	f, err := os.Open(p)
	if err != nil {
		return nil, ports.Meta{}, err
	}

	return f, ports.Meta{
		Source: "file",
		Name:   filepath.Base(p),
		Size:   st.Size(),
	}, nil
}
