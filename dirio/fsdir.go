package dirio

import "io/fs"

// fsDir serves a directory tree backed by an fs.FS.
type fsDir struct {
	fsys fs.FS
}

// DirFS returns a Directory serving fsys. Opening a path attaches the
// subtree at that path to the request's server end; opens naming a missing
// path close the server end instead.
func DirFS(fsys fs.FS) Directory {
	return fsDir{fsys: fsys}
}

func (d fsDir) Open(flags, mode uint32, path string, server *ServerEnd) {
	if server == nil {
		return
	}
	if path == "" || path == "." || path == "/" {
		server.Serve(d)
		return
	}
	sub, err := fs.Sub(d.fsys, path)
	if err != nil {
		server.Close()
		return
	}
	if _, err := fs.Stat(sub, "."); err != nil {
		server.Close()
		return
	}
	server.Serve(fsDir{fsys: sub})
}
