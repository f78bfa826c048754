package api

// NextID returns the id following the highest id in articles.
func NextID(articles []Article) int {
	max := 0
	for _, a := range articles {
		if a.ID > max {
			max = a.ID
		}
	}
	return max + 1
}
