package lockfile

import (
	"bytes"

	"github.com/tidwall/jsonc"
)

// ParseLenient parses JSON that may contain comments and trailing commas,
// as written in bun.lock.
func ParseLenient(data []byte) (*Object, error) {
	data = bytes.TrimPrefix(data, []byte(byteOrderMark))
	return ParseObject(jsonc.ToJSON(data))
}
