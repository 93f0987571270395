package web

import (
	"io/fs"
	"testing"
)

// TestStaticFS_ContainsClient verifies the embedded client files are present.
func TestStaticFS_ContainsClient(t *testing.T) {
	fsys, err := StaticFS()
	if err != nil {
		t.Fatalf("StaticFS: %v", err)
	}
	for _, name := range []string{"index.html", "app.js", "style.css"} {
		if _, err := fs.Stat(fsys, name); err != nil {
			t.Fatalf("expected %s in embedded assets: %v", name, err)
		}
	}
}
