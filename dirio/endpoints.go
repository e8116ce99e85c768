package dirio

import "sync"

// OpenRequest is one open travelling from a client end to the serving
// directory.
type OpenRequest struct {
	Server *ServerEnd
	Path   string
	Flags  uint32
	Mode   uint32
}

// Directory serves open requests arriving on a server end.
//
// Open is fire-and-forget: implementations answer the caller through the
// request's server endpoint, not through a return value.
type Directory interface {
	Open(flags, mode uint32, path string, server *ServerEnd)
}

// pair is the shared state behind one client/server endpoint pair.
type pair struct {
	mu      sync.Mutex
	dir     Directory
	pending []OpenRequest
	table   *Table
	handle  Handle
	closed  bool
}

// ClientEnd issues open requests into a directory connection.
type ClientEnd struct {
	p *pair
}

// ServerEnd is the serving side of a directory connection.
type ServerEnd struct {
	p *pair
}

// NewEndpoints creates a connected endpoint pair in the default table.
func NewEndpoints() (*ClientEnd, *ServerEnd, error) {
	return defaultTable.NewEndpoints()
}

// NewEndpoints creates a connected endpoint pair tracked by t.
func (t *Table) NewEndpoints() (*ClientEnd, *ServerEnd, error) {
	p := &pair{table: t}
	h, err := t.insert(p)
	if err != nil {
		return nil, nil, err
	}
	p.handle = h
	return &ClientEnd{p: p}, &ServerEnd{p: p}, nil
}

// Open sends a fire-and-forget open request over the connection.
// Requests on a closed connection are dropped; requests sent before a
// directory is attached are buffered until Serve.
func (c *ClientEnd) Open(flags, mode uint32, path string, server *ServerEnd) {
	req := OpenRequest{
		Flags:  flags,
		Mode:   mode,
		Path:   path,
		Server: server,
	}

	c.p.mu.Lock()
	if c.p.closed {
		c.p.mu.Unlock()
		return
	}
	dir := c.p.dir
	if dir == nil {
		c.p.pending = append(c.p.pending, req)
		c.p.mu.Unlock()
		return
	}
	c.p.mu.Unlock()

	dir.Open(req.Flags, req.Mode, req.Path, req.Server)
}

// Close tears down the connection and releases its table slot.
// Pending requests are discarded.
func (c *ClientEnd) Close() {
	c.p.close()
}

// Handle returns the pair's table handle, 0 once closed.
func (c *ClientEnd) Handle() Handle {
	c.p.mu.Lock()
	defer c.p.mu.Unlock()
	return c.p.handle
}

// Serve attaches a directory to the connection and delivers any buffered
// requests to it, in arrival order. Attaching twice replaces the directory
// for subsequent requests only.
func (s *ServerEnd) Serve(dir Directory) {
	s.p.mu.Lock()
	if s.p.closed {
		s.p.mu.Unlock()
		return
	}
	s.p.dir = dir
	pending := s.p.pending
	s.p.pending = nil
	s.p.mu.Unlock()

	for _, req := range pending {
		dir.Open(req.Flags, req.Mode, req.Path, req.Server)
	}
}

// Close tears down the connection and releases its table slot.
func (s *ServerEnd) Close() {
	s.p.close()
}

func (p *pair) close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.pending = nil
	h := p.handle
	p.handle = 0
	table := p.table
	p.mu.Unlock()

	if table != nil {
		table.remove(h)
	}
}
