// Package nav names the screens and builds the URLs that move between them.
package nav

import (
	"net/url"
)

type Screen string

const (
	Welcome     Screen = "Welcome"
	Courses     Screen = "Courses"
	UserMenu    Screen = "UserMenu"
	PrivateMenu Screen = "PrivateMenu"
	Profile     Screen = "Profile"
)

var paths = map[Screen]string{
	Welcome:     "/",
	Courses:     "/courses",
	UserMenu:    "/menu",
	PrivateMenu: "/private-menu",
	Profile:     "/profile",
}

// Parameters a screen hands to the next one. Only these survive Route.
const (
	ParamFilterBy   = "filterBy"
	ParamCourseID   = "courseId"
	ParamDishToEdit = "dishToEdit"
	ParamIndex      = "index"
	ParamQuery      = "q"
)

var known = []string{ParamFilterBy, ParamCourseID, ParamDishToEdit, ParamIndex, ParamQuery}

// Path is the bare URL path of s; unknown screens fall back to the welcome page.
func Path(s Screen) string {
	if p, ok := paths[s]; ok {
		return p
	}
	return paths[Welcome]
}

// Route is navigate(screen, params): the destination URL with the known
// parameters carried over unchanged. Empty values are dropped.
func Route(s Screen, params url.Values) string {
	q := url.Values{}
	for _, k := range known {
		if v := params.Get(k); v != "" {
			q.Set(k, v)
		}
	}
	if len(q) == 0 {
		return Path(s)
	}
	return Path(s) + "?" + q.Encode()
}

// With is a small builder for Route's params.
func With(kv ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		v.Set(kv[i], kv[i+1])
	}
	return v
}
