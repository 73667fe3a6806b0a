package lexicon

// Tag is a resolved part-of-speech classification.
// Genus is only ever set together with Type "n".
type Tag struct {
	Type  string `json:"type"`
	Genus string `json:"genus,omitempty"`
}

// IsEmpty reports whether neither field is set. An empty Tag means
// "unresolved".
func (t Tag) IsEmpty() bool {
	return t.Type == "" && t.Genus == ""
}

// String renders the tag as "type=<t>" or "type=<t>,genus=<g>".
func (t Tag) String() string {
	if t.Genus == "" {
		return "type=" + t.Type
	}
	return "type=" + t.Type + ",genus=" + t.Genus
}
