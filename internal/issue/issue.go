// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	ModTomlNotFoundId Id = iota + 1
	ModTomlInvalidId
	UserConfigInvalidId
	BuildToolNotFoundId
	BuildFailedId
	ArtifactsMissingId
	PermissionDeniedId
)

type (
	// Id identifies an issue guide.
	Id int

	// MarkdownMsg is Markdown text rendered by glamour.
	MarkdownMsg string

	// HttpLink is a documentation link appended to a guide.
	HttpLink string

	// Issue is a troubleshooting guide shown when a run aborts.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

// Id returns the issue identifier.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw guide.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// DocLinks returns a copy of the documentation links.
func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the guide with the given glamour style ("dark", "light",
// "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	modTomlNotFoundIssue = &Issue{
		id: ModTomlNotFoundId,
		mdMsg: `
# No mod.toml found!

modpack reads the project description from mod.toml at the project root.

## Things you can try:
- Run modpack from the directory holding mod.toml
- Point modpack at the project:
~~~
$ modpack --project ./path/to/mod package
~~~`,
		docLinks: []HttpLink{"https://github.com/N64Recomp/N64Recomp"},
	}

	modTomlInvalidIssue = &Issue{
		id: ModTomlInvalidId,
		mdMsg: `
# mod.toml is invalid!

Some fields modpack needs are missing or have the wrong type.

## Required fields:
~~~toml
[inputs]
mod_filename = "mymod"

[manifest]
display_name = "My Mod"
version = "1.0.0"
~~~

## Things you can try:
- Check the field named in the error above
- Make sure strings are quoted and sections are spelled correctly`,
	}

	userConfigInvalidIssue = &Issue{
		id: UserConfigInvalidId,
		mdMsg: `
# user_build_config.json could not be read!

This file holds your local compiler and preset choices.

## Things you can try:
- Fix the JSON syntax error reported above
- Delete the file; modpack recreates it with defaults on the next run:
~~~
$ rm user_build_config.json
$ modpack config init
~~~`,
	}

	buildToolNotFoundIssue = &Issue{
		id: BuildToolNotFoundId,
		mdMsg: `
# Build tool not found!

modpack shells out to the project's build tool (make by default) and could
not start it.

## Things you can try:
- Install make and make sure it is in your PATH
- Use another build tool:
~~~
$ modpack --build-tool "mingw32-make -j8" build
~~~`,
	}

	buildFailedIssue = &Issue{
		id: BuildFailedId,
		mdMsg: `
# Build failed!

The build tool exited with a non-zero status. Nothing was packaged.

## Things you can try:
- Read the compiler output above for the first error
- Check the compiler and linker in user_build_config.json
- Rebuild from scratch:
~~~
$ modpack clean && modpack build
~~~`,
	}

	artifactsMissingIssue = &Issue{
		id: ArtifactsMissingId,
		mdMsg: `
# Package incomplete!

Some required files were not found, so no archive was created. The staging
directory was left in place for inspection.

## Things you can try:
- Build the mod first (modpack package builds it unless --skip-build is set)
- Build the native libraries for every platform listed as [ERROR] above
- Check the presets in user_build_config.json match your build directories`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

modpack could not write to the project directory.

## Things you can try:
- Check file and directory permissions of the project
- Close programs that keep the archive or staging files open`,
	}

	issues = map[Id]*Issue{
		modTomlNotFoundIssue.Id():   modTomlNotFoundIssue,
		modTomlInvalidIssue.Id():    modTomlInvalidIssue,
		userConfigInvalidIssue.Id(): userConfigInvalidIssue,
		buildToolNotFoundIssue.Id(): buildToolNotFoundIssue,
		buildFailedIssue.Id():       buildFailedIssue,
		artifactsMissingIssue.Id():  artifactsMissingIssue,
		permissionDeniedIssue.Id():  permissionDeniedIssue,
	}
)

// Ids returns all known issue ids in ascending order.
func Ids() []Id {
	ids := make([]Id, 0, len(issues))
	for id := range issues {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Get returns the guide with the given id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
