package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/blogtech/pkg/api"
)

func WriteJSONArticles(w io.Writer, list []api.Article, indent bool) error {
	if list == nil {
		list = []api.Article{}
	}
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(list)
}

func WriteJSONArticle(w io.Writer, a api.Article, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(a)
}
