package integration

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitesmith/internal/build"
	"git.home.luguber.info/inful/sitesmith/internal/config"
)

// runBuild loads the configuration of the project at root the way the CLI
// does and runs one build.
func runBuild(t *testing.T, root string) (*build.Result, error) {
	t.Helper()

	cfg, err := config.Load(root, "")
	require.NoError(t, err, "failed to load config")
	return build.NewDriver(cfg).Run()
}

// hashTree maps every file under dir (relative, slash separated) to the
// sha256 of its content. Directories appear with an empty hash.
func hashTree(t *testing.T, dir string) map[string]string {
	t.Helper()

	out := map[string]string{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			out[rel+"/"] = ""
			return nil
		}
		// #nosec G304 -- test helper, paths are controlled by test code
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		sum := sha256.Sum256(data)
		out[rel] = hex.EncodeToString(sum[:])
		return nil
	})
	require.NoError(t, err, "failed to hash %s", dir)
	return out
}
