package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/scopelet/lang"
	"github.com/ardnew/scopelet/log"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the writer commands print their results to.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// inputs tracks every file a command reads, so that stdin is consumed at most
// once and a document named twice is read once.
type inputs struct {
	seen     map[fileKey]struct{}
	stdinKey fileKey
	hasKey   bool
	stdin    bool
}

func newInputs() *inputs {
	in := &inputs{seen: make(map[fileKey]struct{})}

	if info, err := os.Stdin.Stat(); err == nil {
		in.stdinKey, in.hasKey = makeFileKey(info)
	}

	return in
}

// read returns the content of the file at path, or of stdin if path is "-".
// It reports false without error when the file was already read.
func (in *inputs) read(path string) ([]byte, bool, error) {
	if path == stdinSource {
		return in.readStdin()
	}

	// Resolve to absolute path to handle relative path duplicates.
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false, err
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, false, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false, err
	}

	if key, ok := makeFileKey(info); ok {
		// Stdin may also be named by a device path such as /dev/stdin.
		if in.hasKey && key == in.stdinKey {
			return in.readStdin()
		}

		if _, exists := in.seen[key]; exists {
			log.Debug("skip duplicate input", slog.String("path", path))

			return nil, false, nil
		}

		in.seen[key] = struct{}{}
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, false, err
	}

	return data, true, nil
}

func (in *inputs) readStdin() ([]byte, bool, error) {
	if in.stdin {
		return nil, false, ErrStdinConflict
	}

	in.stdin = true

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, false, lang.WrapError(err).With(slog.String("path", stdinSource))
	}

	return data, true, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}
