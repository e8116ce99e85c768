package dirio

import (
	"testing"
	"testing/fstest"
)

func TestDirFS_OpenSubtree(t *testing.T) {
	fsys := fstest.MapFS{
		"svc/echo/cfg/settings": &fstest.MapFile{Data: []byte("x")},
	}
	table := NewTable()
	dir := DirFS(fsys)

	client, server, err := table.NewEndpoints()
	if err != nil {
		t.Fatalf("NewEndpoints: %v", err)
	}
	subClient, subServer, err := table.NewEndpoints()
	if err != nil {
		t.Fatalf("NewEndpoints: %v", err)
	}

	server.Serve(dir)
	client.Open(0, 0, "svc/echo", subServer)

	// The subtree is now served on the second pair: opening a child of it
	// must succeed, which we observe through yet another pair staying open.
	leafClient, leafServer, err := table.NewEndpoints()
	if err != nil {
		t.Fatalf("NewEndpoints: %v", err)
	}
	subClient.Open(0, 0, "cfg", leafServer)
	if leafClient.Handle() == 0 {
		t.Error("open of existing path closed the server end")
	}
}

func TestDirFS_MissingPathClosesServer(t *testing.T) {
	table := NewTable()
	dir := DirFS(fstest.MapFS{})

	client, server, err := table.NewEndpoints()
	if err != nil {
		t.Fatalf("NewEndpoints: %v", err)
	}
	server.Serve(dir)

	subClient, subServer, err := table.NewEndpoints()
	if err != nil {
		t.Fatalf("NewEndpoints: %v", err)
	}
	client.Open(0, 0, "no/such/dir", subServer)

	if subClient.Handle() != 0 {
		t.Error("open of missing path left the server end alive")
	}
}

func TestDirFS_NilServerIgnored(t *testing.T) {
	table := NewTable()
	client, server, err := table.NewEndpoints()
	if err != nil {
		t.Fatalf("NewEndpoints: %v", err)
	}
	server.Serve(DirFS(fstest.MapFS{}))
	// Must not panic.
	client.Open(0, 0, "anything", nil)
}
