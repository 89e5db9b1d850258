package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/juju/clock"
	"github.com/juju/retry"
	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// CopyAttempts is how often a package copy is tried before the restore fails.
	CopyAttempts = 3
	// CopyDelay is the pause between copy attempts.
	CopyDelay = 100 * time.Millisecond
)

type packageMetadata struct {
	Version int    `json:"version"`
	Source  string `json:"source"`
}

// installer copies package folders out of local feeds. Copies are retried because
// feeds on network shares fail transiently.
type installer struct {
	clock  clock.Clock
	logger ports.Logger
}

func (in installer) install(ctx context.Context, src, target, source string) error {
	err := retry.Call(retry.CallArgs{
		Func: func() error {
			return copyPackage(src, target, source)
		},
		IsFatalError: func(err error) bool {
			return errors.Is(err, fs.ErrNotExist)
		},
		NotifyFunc: func(err error, attempt int) {
			in.logger.Debug(fmt.Sprintf("copy of %s failed on attempt %d: %v", src, attempt, err))
		},
		Attempts: CopyAttempts,
		Delay:    CopyDelay,
		Clock:    in.clock,
		Stop:     ctx.Done(),
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = zerr.With(zerr.Wrap(err, domain.ErrPackageCopyFailed.Error()), "source", src)
		return zerr.With(err, "target", target)
	}
	return nil
}

// copyPackage extracts src into a temporary sibling of target and renames it into
// place, so target either holds a complete package or does not exist.
func copyPackage(src, target, source string) error {
	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return err
	}
	tmp, err := os.MkdirTemp(filepath.Dir(target), ".install-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.RemoveAll(tmp)
	}()

	if err := copyTree(src, tmp); err != nil {
		return err
	}

	meta, err := json.Marshal(packageMetadata{Version: 2, Source: source})
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(tmp, MetadataFileName), meta, domain.FilePerm); err != nil {
		return err
	}

	if err := os.RemoveAll(target); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if d.Name() == MetadataFileName {
			return nil
		}
		out := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(out, domain.DirPerm)
		}
		return copyFile(path, out)
	})
}

func copyFile(src, dst string) error {
	// #nosec G304 -- src is a file inside a configured feed
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	// #nosec G304 -- dst is inside the temporary install folder
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePerm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
