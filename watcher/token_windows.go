//go:build windows

package watcher

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"

	"github.com/gentlemanautomaton/winproc"
	"golang.org/x/crypto/sha3"
)

// newToken derives a stable identity token for p. The operating system
// recycles process IDs, so the token folds the process creation time in
// with the ID, executable name and owning user: two processes that ever
// share an ID still differ in creation time.
func newToken(p winproc.Process) string {
	var num [8]byte
	var buf bytes.Buffer

	binary.BigEndian.PutUint32(num[:4], uint32(p.ID))
	buf.Write(num[:4])
	binary.BigEndian.PutUint64(num[:], uint64(p.Times.Creation.UnixNano()))
	buf.Write(num[:])
	buf.WriteString(p.Name)
	buf.WriteByte(0)
	buf.WriteString(p.User.SID)

	sum := sha3.Sum224(buf.Bytes())
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
