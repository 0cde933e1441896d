package stacktrace_test

import (
	"io"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanhminhmr/go-errtrace/exception"
	"github.com/thanhminhmr/go-errtrace/stacktrace"
)

var hexHash = regexp.MustCompile(`^[0-9a-f]{8}$`)

func TestHashIgnoresLineNumbersAndMessages(t *testing.T) {
	hasher := stacktrace.NewHasher(nil)
	record := &stacktrace.Record{Type: "E", Message: "first", Frames: frames("m", 3)}
	moved := &stacktrace.Record{Type: "E", Message: "second", Frames: frames("m", 3)}
	for index := range moved.Frames {
		moved.Frames[index].Line += 10
		moved.Frames[index].File = "moved.go"
	}

	hash := hasher.Hash(record)
	assert.Regexp(t, hexHash, hash)
	assert.Equal(t, hash, hasher.Hash(moved))
	assert.Equal(t, hash, hasher.Hash(record))
	assert.NotEqual(t, hash, hasher.Hash(&stacktrace.Record{Type: "E", Frames: frames("n", 3)}))
	assert.NotEqual(t, hash, hasher.Hash(&stacktrace.Record{Type: "E", Frames: frames("m", 2)}))
}

func TestHashSeparatesClassAndMethod(t *testing.T) {
	hasher := stacktrace.NewHasher(nil)
	a := &stacktrace.Record{Frames: []stacktrace.Frame{{Class: "ab", Method: "c"}}}
	b := &stacktrace.Record{Frames: []stacktrace.Frame{{Class: "a", Method: "bc"}}}
	assert.NotEqual(t, hasher.Hash(a), hasher.Hash(b))
}

func TestHashSkipsFilteredFrames(t *testing.T) {
	hasher := stacktrace.NewHasher(stacktrace.DefaultFilter())
	record := &stacktrace.Record{Frames: frames("m", 2)}
	noisy := &stacktrace.Record{Frames: append(frames("m", 2),
		stacktrace.Frame{Class: "testing", Method: "tRunner", File: "testing.go", Line: 1934},
		stacktrace.Frame{Class: "runtime", Method: "goexit", File: "asm_amd64.s", Line: 1700},
	)}
	assert.Equal(t, hasher.Hash(record), hasher.Hash(noisy))
	assert.NotEqual(t, stacktrace.NewHasher(nil).Hash(record), stacktrace.NewHasher(nil).Hash(noisy))
}

func TestHashOwnFramesOnly(t *testing.T) {
	hasher := stacktrace.NewHasher(nil)
	record := &stacktrace.Record{Frames: frames("m", 2)}
	wrapped := &stacktrace.Record{
		Frames:     frames("m", 2),
		Cause:      &stacktrace.Record{Frames: frames("cause", 1)},
		Suppressed: []*stacktrace.Record{{Frames: frames("suppressed", 1)}},
	}
	assert.Equal(t, hasher.Hash(record), hasher.Hash(wrapped))

	hashes := hasher.Hashes(wrapped)
	require.Len(t, hashes, 2)
	assert.Equal(t, hasher.Hash(wrapped), hashes[0])
	assert.Equal(t, hasher.Hash(wrapped.Cause), hashes[1])
}

func TestHashNilRecord(t *testing.T) {
	hasher := stacktrace.NewHasher(nil)
	assert.Equal(t, hasher.Hash(&stacktrace.Record{}), hasher.Hash(nil))
	assert.Regexp(t, hexHash, hasher.Hash(nil))
	assert.Empty(t, hasher.Hashes(nil))
}

func TestHashError(t *testing.T) {
	hasher := stacktrace.NewHasher(stacktrace.DefaultFilter())
	_, ok := hasher.HashError(nil)
	assert.False(t, ok)

	first, second := failTwice()
	firstHash, ok := hasher.HashError(first)
	require.True(t, ok)
	secondHash, _ := hasher.HashError(second)
	assert.Equal(t, firstHash, secondHash)

	otherHash, _ := hasher.HashError(exception.String("other").FillStackTrace(0))
	assert.NotEqual(t, firstHash, otherHash)

	plainHash, ok := hasher.HashError(io.EOF)
	require.True(t, ok)
	assert.Regexp(t, hexHash, plainHash)
}

// failTwice raises the same error from two lines of the same function.
func failTwice() (error, error) {
	first := exception.String("failed").FillStackTrace(0)
	second := exception.String("failed").FillStackTrace(0)
	return first, second
}
