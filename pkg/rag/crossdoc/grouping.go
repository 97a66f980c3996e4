package crossdoc

import (
	"regexp"
	"strings"

	"grant-assistant-be/pkg/store"
)

// Filename patterns for grant identifiers, tried in order. The longer
// topic-facility form is preferred over the short year form.
var grantPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(AMIF-\d{4}-TF\d+-AG-[^_]+)`),
	regexp.MustCompile(`(?i)(AMIF-\d{4}-[^_]+)`),
}

// grantKeywordTable is the last-resort content classifier. The table is
// ordered: on tied keyword scores the earlier entry wins, so ordering
// is part of the contract.
var grantKeywordTable = []struct {
	GrantID  string
	Keywords []string
}{
	{"AMIF-2025-TF2-AG-INTE-01-WOMEN", []string{"WOMEN", "GENDER", "FEMALE"}},
	{"AMIF-2025-TF2-AG-INTE-05-CHILDREN", []string{"CHILDREN", "CHILD", "MINORS", "YOUTH"}},
	{"AMIF-2025-TF2-AG-INTE-02-HEALTH", []string{"HEALTH", "MEDICAL", "HEALTHCARE"}},
	{"AMIF-2025-TF2-AG-INTE-03-DIGITAL", []string{"DIGITAL", "TECHNOLOGY", "ONLINE"}},
	{"AMIF-2025-TF2-AG-INTE-04-PATHWAYS", []string{"PATHWAYS", "EDUCATION", "TRAINING"}},
}

// Group is one grant program's slice of the retrieved documents.
type Group struct {
	ID        string
	Documents []store.Document
}

// ExtractGrantGroups partitions documents into grant groups. Every
// document lands in exactly one group; groups appear in first-assignment
// order so downstream prompts and summaries are deterministic.
//
// Per document, first rule wins:
//  1. metadata grant_group, unless it is the unknown sentinel
//  2. grant identifier regex over filename (falling back to source)
//  3. keyword scoring of the content against the ordered grant table
//  4. the UNKNOWN bucket
func ExtractGrantGroups(documents []store.Document) []Group {
	var groups []Group
	index := make(map[string]int)

	assign := func(id string, doc store.Document) {
		if i, ok := index[id]; ok {
			groups[i].Documents = append(groups[i].Documents, doc)
			return
		}
		index[id] = len(groups)
		groups = append(groups, Group{ID: id, Documents: []store.Document{doc}})
	}

	for _, doc := range documents {
		if g := doc.Meta.GrantGroup; g != "" && g != store.UnknownGrantSentinel {
			assign(g, doc)
			continue
		}

		filename := doc.Meta.Filename
		if filename == "" {
			filename = doc.Meta.Source
		}
		if filename == "" {
			assign(store.UnknownGroup, doc)
			continue
		}

		if id, ok := matchGrantID(filename); ok {
			assign(id, doc)
			continue
		}

		if id, ok := classifyByContent(doc.Content); ok {
			assign(id, doc)
			continue
		}
		assign(store.UnknownGroup, doc)
	}

	return groups
}

// GrantGroupFromFilename resolves the grant identifier encoded in a
// filename, or the unknown sentinel when the name carries none. Used at
// ingestion time to stamp chunk metadata.
func GrantGroupFromFilename(filename string) string {
	if id, ok := matchGrantID(filename); ok {
		return id
	}
	return store.UnknownGrantSentinel
}

func matchGrantID(filename string) (string, bool) {
	for _, pattern := range grantPatterns {
		if m := pattern.FindStringSubmatch(filename); m != nil {
			return strings.ToUpper(m[1]), true
		}
	}
	return "", false
}

func classifyByContent(content string) (string, bool) {
	upper := strings.ToUpper(content)

	best := ""
	maxScore := 0
	for _, entry := range grantKeywordTable {
		score := 0
		for _, kw := range entry.Keywords {
			if strings.Contains(upper, kw) {
				score++
			}
		}
		if score > maxScore {
			maxScore = score
			best = entry.GrantID
		}
	}
	if maxScore == 0 {
		return "", false
	}
	return best, true
}
