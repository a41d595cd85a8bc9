package services

// Group is one bucket of a partition.
type Group[T any] struct {
	Key   string `json:"key"`
	Items []T    `json:"items"`
}

// GroupBy partitions items by key. Buckets appear in first-seen order and
// items keep their input order within a bucket.
func GroupBy[T any](items []T, key func(T) string) []Group[T] {
	groups := make([]Group[T], 0)
	index := make(map[string]int)

	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[T]{Key: k, Items: make([]T, 0)})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	return groups
}
