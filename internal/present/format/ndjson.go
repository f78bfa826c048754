package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/blogtech/pkg/api"
)

// WriteNDJSONArticles writes articles as newline-delimited JSON objects.
func WriteNDJSONArticles(w io.Writer, list []api.Article) error {
	enc := json.NewEncoder(w)
	for _, a := range list {
		if err := enc.Encode(a); err != nil {
			return err
		}
	}
	return nil
}
