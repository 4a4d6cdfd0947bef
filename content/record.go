package content

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Ref names a record: either a numbered entry or the most recent one.
// The zero Ref is Latest. Refs are comparable and used as cache keys.
type Ref struct {
	num int
	set bool
}

// Latest refers to the most recently published record.
func Latest() Ref {
	return Ref{}
}

// Num refers to the record with identifier n.
func Num(n int) Ref {
	return Ref{num: n, set: true}
}

// IsLatest reports whether r is the most-recent sentinel.
func (r Ref) IsLatest() bool {
	return !r.set
}

// Num returns the identifier. It is meaningless for Latest.
func (r Ref) Num() int {
	return r.num
}

func (r Ref) String() string {
	if r.IsLatest() {
		return "latest"
	}
	return strconv.Itoa(r.num)
}

// Record is the metadata document published for each entry. Only Num and
// Img drive the filesystem; Title is kept for log lines.
type Record struct {
	Num   int    `json:"num"`
	Img   string `json:"img"`
	Title string `json:"title,omitempty"`
}

// ParseRecord decodes an info.0.json document.
func ParseRecord(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("failed to decode record: %w", err)
	}
	return rec, nil
}
