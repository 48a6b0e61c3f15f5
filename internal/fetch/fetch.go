// Package fetch downloads source meshes with go-getter, so a mesh can come
// from a local path, an HTTP URL, a git repository or an object store.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter"
)

// Mesh fetches the single file at src into dstDir and returns the local path.
// Relative local sources are resolved against the working directory.
//
// Examples of src:
//
//	./models/bunny.obj
//	https://example.com/models/bunny.obj
//	git::https://github.com/org/models.git//bunny.obj?ref=v1
func Mesh(ctx context.Context, src, dstDir string, log *slog.Logger) (string, error) {
	pwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return "", fmt.Errorf("create directory %s: %w", dstDir, err)
	}

	dst := filepath.Join(dstDir, fileName(src))
	log = log.With("src", src)
	log.Info("start fetching mesh", "dst", dst)

	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		return "", fmt.Errorf("fetch %s: %w", src, err)
	}

	log.Info("done fetching mesh", "path", dst)
	return dst, nil
}

// fileName derives a local file name from a go-getter source string,
// dropping forced-getter prefixes, query strings and subdirectory markers.
func fileName(src string) string {
	s := src
	if i := strings.Index(s, "::"); i >= 0 {
		s = s[i+2:]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimRight(s, "/")
	name := path.Base(filepath.ToSlash(s))
	if name == "." || name == "/" || name == "" {
		return "mesh.obj"
	}
	return name
}
