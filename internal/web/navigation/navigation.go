// Package navigation builds the title and breadcrumb trail of rendered pages.
package navigation

// Crumb is a single breadcrumb link.
type Crumb struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	AppTitle  string
	PageTitle string
	Section   string
	Crumbs    []Crumb
}

// NewContext creates a new navigation context.
func NewContext(appTitle, pageTitle, section string) *Context {
	return &Context{
		AppTitle:  appTitle,
		PageTitle: pageTitle,
		Section:   section,
		Crumbs:    make([]Crumb, 0),
	}
}

// Add appends a crumb and makes it the active one.
func (c *Context) Add(title, url string) *Context {
	for i := range c.Crumbs {
		c.Crumbs[i].Active = false
	}

	c.Crumbs = append(c.Crumbs, Crumb{
		Title:  title,
		URL:    url,
		Active: true,
	})

	return c
}

// DocumentTitle is the text of the HTML title element.
func (c *Context) DocumentTitle() string {
	if c.AppTitle == "" {
		return c.PageTitle
	}
	if c.PageTitle == "" {
		return c.AppTitle
	}

	return c.PageTitle + " | " + c.AppTitle
}

// InSection checks if the page belongs to section.
func (c *Context) InSection(section string) bool {
	return c.Section == section
}
