// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"maps"
	"slices"

	"github.com/charmbracelet/glamour"
)

type Id int

const (
	ArchiverNotFoundId Id = iota + 1
	EditorNotFoundId
	ConfigLoadFailedId
	MalformedBundleId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue's Markdown with the named glamour style
// ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	archiverNotFoundIssue = &Issue{
		id: ArchiverNotFoundId,
		mdMsg: `
# Archive utility not found!

The external archiver backend shells out to the platform archive tools and
could not start one of them.

## Things you can try:
- On Linux or macOS, install ` + "`zip`" + ` and ` + "`unzip`" + ` and make sure they are on your PATH
- On Windows, make sure ` + "`powershell`" + ` is on your PATH
- Switch to the built-in codec instead:
~~~
$ xapktool --archiver native -d app.xapk out/
~~~`,
		extLinks: []HttpLink{"https://infozip.sourceforge.net/"},
	}

	editorNotFoundIssue = &Issue{
		id: EditorNotFoundId,
		mdMsg: `
# Editor not found!

The view operation could not launch a text editor for ` + "`manifest.json`" + `.

## Editor lookup order:
1. ` + "`editor.command`" + ` in your config file (or ` + "`XAPKTOOL_EDITOR_COMMAND`" + `)
2. ` + "`$VISUAL`" + `
3. ` + "`$EDITOR`" + `
4. ` + "`notepad`" + ` on Windows, ` + "`vi`" + ` elsewhere

## Things you can try:
~~~
$ XAPKTOOL_EDITOR_COMMAND="code --wait" xapktool -v app.xapk
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your configuration file could not be read or does not match the schema.

## Things you can try:
- Show the effective configuration:
~~~
$ xapktool config show
~~~
- Write a fresh default file:
~~~
$ xapktool config init
~~~
- Allowed values: ` + "`archiver.backend`" + ` is "native" or "external",
  ` + "`archiver.compression`" + ` is "deflate" or "store",
  ` + "`marker.format`" + ` is "xml", "yaml", "toml" or "json"`,
	}

	malformedBundleIssue = &Issue{
		id: MalformedBundleId,
		mdMsg: `
# The bundle could not be read as an archive!

An .xapk file is a plain ZIP archive. This one is truncated, corrupted, or not
a ZIP file at all.

## Things you can try:
- Download the bundle again
- Check it with an archive tool:
~~~
$ unzip -l app.xapk
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

xapktool could not write to the output location.

## Things you can try:
- Check the permissions of the output directory and of existing output files
- Choose an output path inside a directory you own`,
	}

	issues = map[Id]*Issue{
		archiverNotFoundIssue.Id(): archiverNotFoundIssue,
		editorNotFoundIssue.Id():   editorNotFoundIssue,
		configLoadFailedIssue.Id(): configLoadFailedIssue,
		malformedBundleIssue.Id():  malformedBundleIssue,
		permissionDeniedIssue.Id(): permissionDeniedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
}

func Get(id Id) *Issue {
	return issues[id]
}
