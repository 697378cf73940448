package transport

import (
	"bytes"
	"encoding/binary"
)

// A frame is split into chunks so no single DataChannel message exceeds the
// SCTP message size peers agree on. Each chunk carries
// seq(4) index(2) count(2) before its payload.
const (
	headerSize = 8
	chunkSize  = 16 * 1024
)

func splitFrame(seq uint32, data []byte, size int) [][]byte {
	count := max((len(data)+size-1)/size, 1)
	chunks := make([][]byte, 0, count)
	for i := 0; i < count; i++ {
		end := min((i+1)*size, len(data))
		part := data[i*size : end]
		msg := make([]byte, headerSize+len(part))
		binary.BigEndian.PutUint32(msg, seq)
		binary.BigEndian.PutUint16(msg[4:], uint16(i))
		binary.BigEndian.PutUint16(msg[6:], uint16(count))
		copy(msg[headerSize:], part)
		chunks = append(chunks, msg)
	}
	return chunks
}

// assembler rebuilds frames from chunks that may arrive out of order or not
// at all. Starting a newer frame abandons the partial one; chunks of older
// frames are ignored.
type assembler struct {
	seq      uint32
	started  bool
	complete bool
	parts    [][]byte
	got      int
}

func (a *assembler) add(msg []byte) ([]byte, bool) {
	if len(msg) < headerSize {
		return nil, false
	}
	seq := binary.BigEndian.Uint32(msg)
	idx := int(binary.BigEndian.Uint16(msg[4:]))
	count := int(binary.BigEndian.Uint16(msg[6:]))
	if count == 0 || idx >= count {
		return nil, false
	}

	if !a.started || seq != a.seq {
		if a.started && int32(seq-a.seq) < 0 {
			return nil, false
		}
		a.seq = seq
		a.started = true
		a.complete = false
		a.parts = make([][]byte, count)
		a.got = 0
	}
	if a.complete || len(a.parts) != count || a.parts[idx] != nil {
		return nil, false
	}

	a.parts[idx] = append([]byte(nil), msg[headerSize:]...)
	a.got++
	if a.got < count {
		return nil, false
	}
	a.complete = true
	data := bytes.Join(a.parts, nil)
	a.parts = nil
	return data, true
}
