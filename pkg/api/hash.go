package api

import (
	"encoding/hex"
	"strconv"

	"github.com/zeebo/blake3"
)

// Hash returns a deterministic BLAKE3 hash of everything that influences the
// rendered page of the article. Tag order is significant because tags render
// in input order.
func (a Article) Hash() string {
	h := blake3.New()

	h.Write([]byte(strconv.Itoa(a.ID)))
	h.Write([]byte{0})

	for _, s := range []string{a.CleanSlug(), a.Title, a.Author, a.Date, a.Content, string(a.Status)} {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}

	for _, t := range a.Tags {
		h.Write([]byte(t))
		h.Write([]byte{0})
	}
	h.Write([]byte{0}) // end of tags

	for _, r := range a.References {
		h.Write([]byte(r))
		h.Write([]byte{0})
	}

	sum := h.Sum(nil)
	return hex.EncodeToString(sum)
}
