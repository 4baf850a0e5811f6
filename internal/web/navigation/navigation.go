// Package navigation describes the sections of the single page site and
// which one is active.
package navigation

// Section ids of the site.
const (
	SectionHero     = "hero"
	SectionAbout    = "about"
	SectionServices = "services"
	SectionContact  = "contact"
)

// Section is one anchor target on the page.
type Section struct {
	ID    string
	Title string
}

// Anchor returns the in-page link to the section.
func (s Section) Anchor() string {
	return "#" + s.ID
}

// Context represents the navigation context for a page.
type Context struct {
	PageTitle     string
	ActiveSection string
	Sections      []Section
}

// NewContext creates a new navigation context without sections.
func NewContext(pageTitle, activeSection string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		Sections:      make([]Section, 0),
	}
}

// Site returns the context of the landing page with all its sections.
func Site(pageTitle, activeSection string) *Context {
	return NewContext(pageTitle, activeSection).
		AddSection(SectionHero, "Home").
		AddSection(SectionAbout, "About").
		AddSection(SectionServices, "Services").
		AddSection(SectionContact, "Contact")
}

// AddSection appends a section to the context.
func (c *Context) AddSection(id, title string) *Context {
	c.Sections = append(c.Sections, Section{
		ID:    id,
		Title: title,
	})

	return c
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}

// Has reports whether the context contains the section.
func (c *Context) Has(section string) bool {
	for _, s := range c.Sections {
		if s.ID == section {
			return true
		}
	}

	return false
}
