package main

// General API documentation for swaggo. The operations themselves are
// maintained by hand in internal/apidocs; httpapi tests fail when a route is
// missing from that document.
//
// @title           smartdocs API
// @version         1.0
// @description     API documentation models, revisions and methods with lifecycle hooks.
//
// @contact.name   smartdocs maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
