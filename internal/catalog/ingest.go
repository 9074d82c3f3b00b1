package catalog

// Batches splits records into upload batches, excluding any record without
// a URL: those have no stable identity and never enter the store.
func Batches(records []Record, size int) [][]Record {
	if size <= 0 {
		size = 1000
	}
	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if r.URL == "" {
			continue
		}
		kept = append(kept, r)
	}

	var batches [][]Record
	for len(kept) > 0 {
		n := size
		if len(kept) < n {
			n = len(kept)
		}
		batches = append(batches, kept[:n])
		kept = kept[n:]
	}
	return batches
}
