package storage

import (
	"bytes"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/jlaffaye/ftp"
)

// FTPMirror pushes stored files to a remote FTP host. A connection is dialed
// per push; the portal writes uploads rarely enough that pooling is not worth
// the bookkeeping.
type FTPMirror struct {
	addr     string
	user     string
	password string
	baseDir  string
	mu       sync.Mutex
}

// NewFTPMirror builds a mirror for the given host settings.
func NewFTPMirror(host string, port int, user, password, baseDir string) *FTPMirror {
	return &FTPMirror{
		addr:     fmt.Sprintf("%s:%d", host, port),
		user:     user,
		password: password,
		baseDir:  baseDir,
	}
}

// Push uploads the file bytes to the mirror host under baseDir.
func (m *FTPMirror) Push(relPath string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	conn, err := ftp.Dial(m.addr, ftp.DialWithTimeout(10*time.Second))
	if err != nil {
		return fmt.Errorf("dial ftp %s: %w", m.addr, err)
	}
	defer conn.Quit() //nolint:errcheck

	if err := conn.Login(m.user, m.password); err != nil {
		return fmt.Errorf("ftp login: %w", err)
	}

	remote := path.Join(m.baseDir, path.Clean("/"+relPath))
	if dir := path.Dir(remote); dir != "." && dir != "/" {
		// MakeDir fails when the directory exists; that is fine.
		_ = conn.MakeDir(dir)
	}

	if err := conn.Stor(remote, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("ftp store %s: %w", remote, err)
	}

	return nil
}
