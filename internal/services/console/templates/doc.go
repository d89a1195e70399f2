// Package templates holds the console's templ components and the view models
// they render.
package templates

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate -path .
