package storage

// LatestPerKey keeps the first item seen for every key while scanning newest to oldest.
// Items with an empty key are skipped. Output preserves the newest-first order of winners.
func LatestPerKey[T any](newestFirst []T, key func(T) string) []T {
	seen := make(map[string]struct{}, len(newestFirst))
	winners := make([]T, 0)
	for _, item := range newestFirst {
		k := key(item)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		winners = append(winners, item)
	}
	return winners
}

// PageSignals cuts a newest-first scan of up to limit+1 rows into a page.
// The extra row only signals that another page exists; it is never returned.
func PageSignals(rows []Signal, limit int) SignalPage {
	if len(rows) <= limit {
		return SignalPage{Results: rows}
	}
	page := rows[:limit]
	return SignalPage{
		Results:    page,
		NextCursor: EncodeCursor(page[len(page)-1].Position),
	}
}
