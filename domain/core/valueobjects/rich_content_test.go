package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int { return &i }

func assertNoAdjacentText(t *testing.T, rc RichContent) {
	t.Helper()
	for i := 1; i < len(rc); i++ {
		assert.False(t, rc[i-1].IsText() && rc[i].IsText(), "segments %d and %d are both text", i-1, i)
	}
}

func TestRichContentBuilderMergesText(t *testing.T) {
	ref := MustEntryID(Bokmaal, 10)

	rc := NewRichContentBuilder().
		AppendText("en ").
		AppendText("").
		AppendText("tekst ").
		AppendSegment(EntrySegment("bok", ref, nil, nil)).
		AppendSegment(TextSegment("")).
		AppendSegment(TextSegment(" og ")).
		AppendText("mer").
		Build()

	assert.Equal(t, RichContent{
		TextSegment("en tekst "),
		EntrySegment("bok", ref, nil, nil),
		TextSegment(" og mer"),
	}, rc)
	assert.Equal(t, "en tekst bok og mer", rc.PlainText())
}

func TestRichContentBuilderReferencesAlwaysPush(t *testing.T) {
	a := MustEntryID(Bokmaal, 1)
	b := MustEntryID(Bokmaal, 2)

	rc := NewRichContentBuilder().
		AppendSegment(EntrySegment("a", a, nil, nil)).
		AppendSegment(EntrySegment("b", b, intPtr(3), intPtr(0))).
		Build()

	assert.Len(t, rc, 2)
	assert.Equal(t, []EntryID{a, b}, rc.References())
	assert.Equal(t, 3, *rc[1].DefinitionID)
	assert.Equal(t, 0, *rc[1].DefinitionIndex)
}

func TestRichContentBuilderNeverProducesAdjacentText(t *testing.T) {
	ref := MustEntryID(Nynorsk, 9)
	ops := []func(b *RichContentBuilder){
		func(b *RichContentBuilder) { b.AppendText("x") },
		func(b *RichContentBuilder) { b.AppendText("") },
		func(b *RichContentBuilder) { b.AppendSegment(EntrySegment("r", ref, nil, nil)) },
		func(b *RichContentBuilder) { b.AppendContent(RichContent{TextSegment("a"), TextSegment("b")}) },
		func(b *RichContentBuilder) {
			other := NewRichContentBuilder().AppendText("y").AppendSegment(EntrySegment("r", ref, nil, nil)).AppendText("z")
			b.AppendBuilder(other)
		},
		func(b *RichContentBuilder) { b.AppendBuilder(b) },
	}

	// every sequence of three operations
	for i := range ops {
		for j := range ops {
			for k := range ops {
				b := NewRichContentBuilder()
				ops[i](b)
				ops[j](b)
				ops[k](b)
				assertNoAdjacentText(t, b.Build())
			}
		}
	}
}

func TestRichContentBuilderBuildIsSnapshot(t *testing.T) {
	b := NewRichContentBuilder().AppendText("før")
	snapshot := b.Build()

	b.AppendText(" etter")

	assert.Equal(t, "før", snapshot.PlainText())
	assert.Equal(t, "før etter", b.Build().PlainText())
}

func TestRichContentBuilderForEachReference(t *testing.T) {
	a := MustEntryID(Bokmaal, 1)
	b := MustEntryID(Bokmaal, 2)

	builder := NewRichContentBuilder().
		AppendText("se ").
		AppendSegment(EntrySegment("a", a, nil, nil)).
		AppendText(", ").
		AppendSegment(EntrySegment("b", b, nil, nil))

	var targets []EntryID
	var positions []int
	builder.ForEachReference(func(segment Segment, index int) {
		targets = append(targets, *segment.Entry)
		positions = append(positions, index)
	})

	assert.Equal(t, []EntryID{a, b}, targets)
	assert.Equal(t, []int{1, 3}, positions)
	assert.Equal(t, 4, builder.Len())
}

func TestAppendBuilderNil(t *testing.T) {
	b := NewRichContentBuilder().AppendText("x")
	b.AppendBuilder(nil)
	assert.Equal(t, RichContent{TextSegment("x")}, b.Build())
}
