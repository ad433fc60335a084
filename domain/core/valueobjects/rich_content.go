package valueobjects

import "strings"

// SegmentType distinguishes plain text from cross-references
type SegmentType string

const (
	SegmentText  SegmentType = "text"
	SegmentEntry SegmentType = "entry"
)

// Segment is one piece of rich content. Entry segments carry the referenced
// entry and, when the reference points at a specific definition, its id and
// zero-based position.
type Segment struct {
	Type            SegmentType `json:"type"`
	Content         string      `json:"content"`
	Entry           *EntryID    `json:"entry,omitempty"`
	DefinitionID    *int        `json:"definitionId,omitempty"`
	DefinitionIndex *int        `json:"definitionIndex,omitempty"`
}

// TextSegment creates a plain text segment
func TextSegment(text string) Segment {
	return Segment{Type: SegmentText, Content: text}
}

// EntrySegment creates a reference segment. definitionID and definitionIndex
// may be nil when the whole entry is referenced.
func EntrySegment(content string, target EntryID, definitionID, definitionIndex *int) Segment {
	return Segment{
		Type:            SegmentEntry,
		Content:         content,
		Entry:           &target,
		DefinitionID:    definitionID,
		DefinitionIndex: definitionIndex,
	}
}

// IsText reports whether the segment is plain text
func (s Segment) IsText() bool {
	return s.Type == SegmentText
}

// IsReference reports whether the segment references another entry
func (s Segment) IsReference() bool {
	return s.Type == SegmentEntry && s.Entry != nil
}

// RichContent is an ordered, immutable sequence of segments in which no two
// adjacent segments are both text.
type RichContent []Segment

// PlainText renders the content without reference markup
func (rc RichContent) PlainText() string {
	var sb strings.Builder
	for _, s := range rc {
		sb.WriteString(s.Content)
	}
	return sb.String()
}

// References returns the targets of all reference segments in order
func (rc RichContent) References() []EntryID {
	var refs []EntryID
	for _, s := range rc {
		if s.IsReference() {
			refs = append(refs, *s.Entry)
		}
	}
	return refs
}

// RichContentBuilder accumulates segments, merging adjacent text
type RichContentBuilder struct {
	segments []Segment
}

// NewRichContentBuilder creates an empty builder
func NewRichContentBuilder() *RichContentBuilder {
	return &RichContentBuilder{}
}

// AppendText appends literal text. Empty strings are ignored.
func (b *RichContentBuilder) AppendText(text string) *RichContentBuilder {
	return b.AppendSegment(TextSegment(text))
}

// AppendSegment appends a single segment, merging it into a trailing text
// segment when both are text.
func (b *RichContentBuilder) AppendSegment(segment Segment) *RichContentBuilder {
	if segment.IsText() {
		if segment.Content == "" {
			return b
		}
		if n := len(b.segments); n > 0 && b.segments[n-1].IsText() {
			b.segments[n-1].Content += segment.Content
			return b
		}
	}
	b.segments = append(b.segments, segment)
	return b
}

// AppendContent appends every segment of rc in order
func (b *RichContentBuilder) AppendContent(rc RichContent) *RichContentBuilder {
	for _, s := range rc {
		b.AppendSegment(s)
	}
	return b
}

// AppendBuilder appends the current contents of another builder
func (b *RichContentBuilder) AppendBuilder(other *RichContentBuilder) *RichContentBuilder {
	if other == nil {
		return b
	}
	return b.AppendContent(other.Build())
}

// Build returns a snapshot of the accumulated content. Later appends do not
// affect snapshots already taken.
func (b *RichContentBuilder) Build() RichContent {
	out := make(RichContent, len(b.segments))
	copy(out, b.segments)
	return out
}

// ForEachReference calls fn for every reference segment in order, passing
// the segment's position within the full sequence.
func (b *RichContentBuilder) ForEachReference(fn func(segment Segment, index int)) {
	for i, s := range b.segments {
		if s.IsReference() {
			fn(s, i)
		}
	}
}

// Len returns the number of segments
func (b *RichContentBuilder) Len() int {
	return len(b.segments)
}
