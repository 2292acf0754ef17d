package mempool

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"unsafe"
)

// WriteTo writes the raw chunkSize bytes of every chunk, in list order, to w.
// Free and fill-stamped chunks are included. There is no header.
func (p *Pool) WriteTo(w io.Writer) (int64, error) {
	if p.released {
		return 0, ErrReleased
	}
	var written int64
	for i := p.head; i != none; i = p.chunks[i].next {
		n, err := w.Write(p.chunks[i].data[:p.chunkSize])
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// DumpToFile writes the pool contents to path; see WriteTo for the format.
// The file is exactly NumChunks()*ChunkSize() bytes long.
func (p *Pool) DumpToFile(path string) (err error) {
	if p.released {
		return ErrReleased
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	n, err := p.WriteTo(w)
	if err != nil {
		return fmt.Errorf("dump %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("dump %s: %w", path, err)
	}
	if n == 0 {
		return ErrEmptyDump
	}
	p.log.Debug("pool dumped", "path", path, "bytes", n)
	return nil
}

// IsValidPointer reports whether b starts exactly at a chunk of this pool.
// Interior pointers are not recognized.
func (p *Pool) IsValidPointer(b []byte) bool {
	if p.released || cap(b) == 0 {
		return false
	}
	return p.findChunkHolding(unsafe.SliceData(b)) != none
}

// Validate walks the chunk list and checks the pool's bookkeeping.
func (p *Pool) Validate() error {
	if p.released {
		return ErrReleased
	}
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrCorrupt}, args...)...))
	}

	if p.total != p.used+p.free {
		fail("total %d != used %d + free %d", p.total, p.used, p.free)
	}
	if got := len(p.chunks) * p.chunkSize; got != p.total {
		fail("%d chunks cover %d bytes, total is %d", len(p.chunks), got, p.total)
	}

	owners := make([]int, len(p.arenas))
	seen := make([]bool, len(p.arenas))
	pos, used, live, cursorSeen := 0, 0, 0, p.cursor == none
	last := none
	for i := p.head; i != none; i = p.chunks[i].next {
		if pos >= len(p.chunks) {
			fail("cycle in chunk list")
			break
		}
		c := &p.chunks[i]
		if i == p.cursor {
			cursorSeen = true
		}
		if want := p.total - pos*p.chunkSize; c.capacity != want {
			fail("chunk %d capacity %d, want %d", i, c.capacity, want)
		}
		if c.used%p.chunkSize != 0 || c.used > c.capacity {
			fail("chunk %d used %d (capacity %d)", i, c.used, c.capacity)
		}
		if c.used > 0 {
			used += c.used
			live++
		}
		if c.arena < 0 || c.arena >= len(p.arenas) {
			fail("chunk %d refers to arena %d", i, c.arena)
		} else {
			if !seen[c.arena] && !c.ownsArena {
				fail("first chunk %d of arena %d does not own it", i, c.arena)
			}
			seen[c.arena] = true
			if c.ownsArena {
				owners[c.arena]++
			}
		}
		last = i
		pos++
	}
	if pos != len(p.chunks) {
		fail("list reaches %d of %d chunks", pos, len(p.chunks))
	}
	if last != p.tail {
		fail("tail is %d, list ends at %d", p.tail, last)
	}
	if !cursorSeen {
		fail("cursor %d not in list", p.cursor)
	}
	for a, n := range owners {
		if n != 1 {
			fail("arena %d has %d owning chunks", a, n)
		}
	}
	if used != p.used {
		fail("chunks claim %d bytes, used is %d", used, p.used)
	}
	if live != p.objects {
		fail("%d live blocks, object count is %d", live, p.objects)
	}
	return errors.Join(errs...)
}
