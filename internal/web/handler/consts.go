package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RouterRootPath is the root path of a route group.
	RouterRootPath = "/"

	// APIPath prefixes the public JSON API.
	APIPath = "/api"

	// AdminAPIPath prefixes the guarded admin JSON API.
	AdminAPIPath = "/api/admin"
)
