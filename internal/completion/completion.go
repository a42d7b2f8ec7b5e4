// Package completion renders shell completion scripts from a kong application model.
package completion

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/template"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/avtag/internal/foundation/errors"
)

// Shells lists the supported shells in the order shown to users.
var Shells = []string{"bash", "elvish", "fish", "powershell", "zsh"}

// Flag is the completion view of one CLI flag.
type Flag struct {
	Name   string
	Short  string
	Help   string
	Bool   bool
	Path   bool
	Values []string
}

type model struct {
	Command string
	Flags   []Flag
}

// Generate writes the completion script for shell (case-insensitive) to w.
// values supplies candidate arguments for flags whose valid values kong does
// not know about, keyed by long flag name.
func Generate(w io.Writer, shell string, app *kong.Application, values map[string][]string) error {
	name := strings.ToLower(strings.TrimSpace(shell))
	tmpl, ok := templates[name]
	if !ok {
		return errors.ValidationError(fmt.Sprintf("unknown shell %q for completion", shell)).
			WithContext("supported", strings.Join(Shells, ", ")).
			Build()
	}
	m := model{Command: app.Name, Flags: Flags(app, values)}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, m); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to render completion script").
			WithContext("shell", name).
			Build()
	}
	if _, err := buf.WriteTo(w); err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to write completion script").Build()
	}
	return nil
}

// Flags collects the visible flags of app, sorted by name.
func Flags(app *kong.Application, values map[string][]string) []Flag {
	all := slices.Clone(app.Flags)
	if app.HelpFlag != nil && !slices.Contains(all, app.HelpFlag) {
		all = append(all, app.HelpFlag)
	}

	flags := make([]Flag, 0, len(all))
	for _, f := range all {
		if f.Hidden {
			continue
		}
		flag := Flag{
			Name: f.Name,
			Help: f.Help,
			Bool: f.IsBool(),
		}
		if f.Short != 0 {
			flag.Short = string(f.Short)
		}
		if f.Tag != nil {
			flag.Path = f.Tag.Type == "path" || f.Tag.Type == "existingfile"
		}
		if f.Enum != "" {
			flag.Values = f.EnumSlice()
		}
		if v, ok := values[f.Name]; ok {
			flag.Values = v
		}
		flags = append(flags, flag)
	}
	slices.SortFunc(flags, func(a, b Flag) int { return strings.Compare(a.Name, b.Name) })
	return flags
}

var funcs = template.FuncMap{
	"join": strings.Join,
	// single-quoted strings in sh/zsh/fish/powershell/elvish
	"sq": func(s string) string { return strings.ReplaceAll(s, "'", `'\''`) },
	"psq": func(s string) string { return strings.ReplaceAll(s, "'", "''") },
	"zhelp": func(s string) string {
		r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)
		return r.Replace(s)
	},
	"esq": func(s string) string { return strings.ReplaceAll(s, "'", "''") },
}

var templates = map[string]*template.Template{
	"bash":       template.Must(template.New("bash").Funcs(funcs).Parse(bashTemplate)),
	"elvish":     template.Must(template.New("elvish").Funcs(funcs).Parse(elvishTemplate)),
	"fish":       template.Must(template.New("fish").Funcs(funcs).Parse(fishTemplate)),
	"powershell": template.Must(template.New("powershell").Funcs(funcs).Parse(powershellTemplate)),
	"zsh":        template.Must(template.New("zsh").Funcs(funcs).Parse(zshTemplate)),
}
