package net

import (
	"bufio"
	"io"
	"sync"
)

type connKey struct {
	scheme string
	host   string
	port   int
}

type pooledConn struct {
	conn   io.ReadWriteCloser
	r      *bufio.Reader
	reused bool
}

// pool keeps at most one idle connection per origin. A connection is removed while a
// request is using it and put back once its response has been read completely.
type pool struct {
	mu   sync.Mutex
	idle map[connKey]*pooledConn
}

func newPool() *pool {
	return &pool{idle: make(map[connKey]*pooledConn)}
}

func (p *pool) take(key connKey) *pooledConn {
	p.mu.Lock()
	defer p.mu.Unlock()
	pc, ok := p.idle[key]
	if !ok {
		return nil
	}
	delete(p.idle, key)
	return pc
}

func (p *pool) put(key connKey, pc *pooledConn) {
	p.mu.Lock()
	old, ok := p.idle[key]
	p.idle[key] = pc
	p.mu.Unlock()
	if ok && old != pc {
		old.conn.Close()
	}
}

func (p *pool) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}

func (p *pool) closeAll() {
	p.mu.Lock()
	idle := p.idle
	p.idle = make(map[connKey]*pooledConn)
	p.mu.Unlock()
	for _, pc := range idle {
		pc.conn.Close()
	}
}
