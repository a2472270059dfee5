package internal

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"
)

const modulePath = "github.com/Iron-Ham/minotaur/internal/"

// TestCoreDoesNotImportHarness checks that the per-robot decision core only
// talks to the world through the robot and occupancy interfaces and never
// reaches into the simulation harness or the user interfaces.
func TestCoreDoesNotImportHarness(t *testing.T) {
	core := []string{"grid", "occupancy", "walls", "doorway", "waypoint", "navigator", "bidding", "robot", "explore"}
	harness := []string{"mailbox", "scenario", "sim", "render", "tui", "stream", "cmd"}

	root := projectRoot(t)
	fset := token.NewFileSet()
	for _, pkg := range core {
		t.Run(pkg, func(t *testing.T) {
			goFiles(t, filepath.Join(root, "internal", pkg), func(path string, content []byte) {
				if strings.HasSuffix(path, "_test.go") {
					return
				}
				f, err := parser.ParseFile(fset, path, content, parser.ImportsOnly)
				if err != nil {
					t.Fatalf("parse %s: %v", path, err)
				}
				for _, s := range f.Imports {
					imp, _ := strconv.Unquote(s.Path.Value)
					name, ok := strings.CutPrefix(imp, modulePath)
					if ok && slices.Contains(harness, name) {
						t.Errorf("%s imports %s", filepath.Base(path), imp)
					}
				}
			})
		})
	}
}
