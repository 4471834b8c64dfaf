// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"cmp"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	DeclarationFileNotFoundId Id = iota + 1
	DeclarationParseErrorId
	DuplicateSetId
	DuplicateCommandId
	UnknownSetId
	CommandNotFoundId
	MissingSubcommandId
	ScriptExecutionFailedId
	ConfigLoadFailedId
	ServerStartFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as terminal Markdown using the glamour style at
// stylePath ("dark", "light", "notty", "auto" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md += "\n\n## See also:\n"
		for _, link := range i.docLinks {
			md += "\n- <" + string(link) + ">"
		}
		for _, link := range i.extLinks {
			md += "\n- <" + string(link) + ">"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	declarationFileNotFoundIssue = &Issue{
		id: DeclarationFileNotFoundId,
		mdMsg: `
# Declaration file not found!

cmdtrie could not read one of the configured declaration files.

## Where files come from (in order):
1. ` + "`--file`" + ` flags on the command line
2. The ` + "`files`" + ` list of your config file
3. ` + "`cmdtrie.cue`" + ` or ` + "`cmdtrie.toml`" + ` in the current directory

## Things you can try:
- Check the path for typos
- Show the effective configuration:
~~~
$ cmdtrie config show
~~~`,
	}

	declarationParseErrorIssue = &Issue{
		id: DeclarationParseErrorId,
		mdMsg: `
# Failed to parse declaration file!

The file has syntax errors or does not match the declaration schema.

## Common issues:
- Two spaces between the words of a command name
- A variadic argument that is not the last one
- Unknown field names
- A flag named ` + "`help`" + ` or with short name ` + "`h`" + `

## Things you can try:
- Check the error message above for the specific line/column
- Validate the file on its own:
~~~
$ cmdtrie validate -f cmdtrie.cue
~~~

## Example of a valid set:
~~~cue
sets: [{
  name: "Thingies"
  commands: [
    {name: "list thingy", args: [{name: "id", required: true}]},
    {name: "get thingy attributes", script: "echo $CMDTRIE_ARG_ID"},
  ]
}]
~~~`,
	}

	duplicateSetIssue = &Issue{
		id: DuplicateSetId,
		mdMsg: `
# Duplicate set name!

Two declaration files define a set with the same name. Set names are global.

## Things you can try:
- Rename one of the sets
- Remove one of the files from the ` + "`files`" + ` list`,
	}

	duplicateCommandIssue = &Issue{
		id: DuplicateCommandId,
		mdMsg: `
# Duplicate command!

Two of the selected sets declare the same command path, so cmdtrie cannot tell
which one should run.

## Things you can try:
- Select fewer sets:
~~~
$ cmdtrie run --set Thingies get thingy 1
~~~
- Rename the command in one of the sets`,
	}

	unknownSetIssue = &Issue{
		id: UnknownSetId,
		mdMsg: `
# Unknown set!

A set was selected that no loaded declaration file defines.

## Things you can try:
- List the loaded sets and their commands:
~~~
$ cmdtrie list
~~~
- Check the ` + "`sets`" + ` list of your config file`,
	}

	commandNotFoundIssue = &Issue{
		id: CommandNotFoundId,
		mdMsg: `
# Command not found!

No declared command matches the words you typed.

## Things you can try:
- Print the command tree:
~~~
$ cmdtrie tree
~~~
- Check for typos in the command name
- Use tab completion:
~~~
$ cmdtrie run <TAB>
~~~`,
	}

	missingSubcommandIssue = &Issue{
		id: MissingSubcommandId,
		mdMsg: `
# Missing subcommand!

The words you typed name a group of commands, not a command.

## Things you can try:
- Add one of the subcommands listed in the help output
- Print the command tree:
~~~
$ cmdtrie tree
~~~`,
	}

	scriptExecutionFailedIssue = &Issue{
		id: ScriptExecutionFailedId,
		mdMsg: `
# Script execution failed!

The command's script failed to run in the built-in shell interpreter.

## Things you can try:
- Run with verbose mode for more details:
~~~
$ cmdtrie --verbose run <command>
~~~
- Print the resolved invocation without running it:
~~~
$ cmdtrie resolve <command>
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the cmdtrie configuration file.

## Configuration file locations:
- Linux: ~/.config/cmdtrie/config.cue
- macOS: ~/Library/Application Support/cmdtrie/config.cue
- Windows: %APPDATA%\cmdtrie\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ cmdtrie config init
~~~
- Remove the config file to use defaults

## Example configuration:
~~~cue
files: ["./cmdtrie.cue"]
sets: ["Thingies"]

ui: {
  color_scheme: "auto"
  verbose: false
}
~~~`,
	}

	serverStartFailedIssue = &Issue{
		id: ServerStartFailedId,
		mdMsg: `
# Failed to start the SSH server!

## Things you can try:
- Pick another port:
~~~
$ cmdtrie serve --port 0
~~~
- Check that no other process listens on the configured address`,
	}

	issues = map[Id]*Issue{
		declarationFileNotFoundIssue.Id(): declarationFileNotFoundIssue,
		declarationParseErrorIssue.Id():   declarationParseErrorIssue,
		duplicateSetIssue.Id():            duplicateSetIssue,
		duplicateCommandIssue.Id():        duplicateCommandIssue,
		unknownSetIssue.Id():              unknownSetIssue,
		commandNotFoundIssue.Id():         commandNotFoundIssue,
		missingSubcommandIssue.Id():       missingSubcommandIssue,
		scriptExecutionFailedIssue.Id():   scriptExecutionFailedIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
		serverStartFailedIssue.Id():       serverStartFailedIssue,
	}
)

// Values returns every registered issue ordered by id.
func Values() []*Issue {
	values := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		values = append(values, i)
	}
	slices.SortFunc(values, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
