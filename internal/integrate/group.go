package integrate

import "github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/models"

// Group is the set of raw records sharing one candidate key. Records keep
// their ingestion order within the group.
type Group struct {
	Key     string
	Records []models.RawRecord
}

// GroupByKey partitions keyed records by exact candidate key. Matching is
// never fuzzy: near-duplicate titles that hash to different keys stay in
// separate groups. Groups come back in first-seen key order so reruns
// over identical input emit tables in identical row order.
func GroupByKey(records []models.RawRecord) []Group {
	index := make(map[string]int, len(records))
	var groups []Group
	for _, rec := range records {
		i, ok := index[rec.CandidateKey]
		if !ok {
			i = len(groups)
			index[rec.CandidateKey] = i
			groups = append(groups, Group{Key: rec.CandidateKey})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}
	return groups
}
