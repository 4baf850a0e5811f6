package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContext(t *testing.T) {
	ctx := NewContext("Test Page", SectionAbout)

	assert.Equal(t, "Test Page", ctx.PageTitle)
	assert.Equal(t, SectionAbout, ctx.ActiveSection)
	assert.NotNil(t, ctx.Sections)
	assert.Empty(t, ctx.Sections)
}

func TestContext_AddSection_Chaining(t *testing.T) {
	ctx := NewContext("Test Page", "one").
		AddSection("one", "One").
		AddSection("two", "Two")

	assert.Len(t, ctx.Sections, 2)
	assert.Equal(t, "One", ctx.Sections[0].Title)
	assert.Equal(t, "#two", ctx.Sections[1].Anchor())
}

func TestSite(t *testing.T) {
	ctx := Site("Why Ideas", SectionHero)

	ids := make([]string, 0, len(ctx.Sections))
	for _, s := range ctx.Sections {
		ids = append(ids, s.ID)
	}

	assert.Equal(t, []string{SectionHero, SectionAbout, SectionServices, SectionContact}, ids)
	assert.True(t, ctx.Has(SectionContact))
	assert.False(t, ctx.Has("dashboard"))
}

func TestContext_IsSectionActive(t *testing.T) {
	ctx := Site("Why Ideas", SectionContact)

	assert.True(t, ctx.IsSectionActive(SectionContact))
	assert.False(t, ctx.IsSectionActive(SectionHero))
}
