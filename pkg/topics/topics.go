// Package topics adds file-backed help topics to a cobra command tree.
//
// Topics are read once from an fs.FS (usually an embed.FS) and served by a
// replacement help command: "help <topic>" prints the topic, "help topics"
// lists them and anything else falls through to regular command help.
// A topic named "option-<flag>" is also reachable as "help --<flag>".
package topics

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/arthur-debert/f2llm/pkg/errors"
	"github.com/spf13/cobra"
)

// DefaultExtensions are the file extensions loaded as topics.
var DefaultExtensions = []string{".md", ".txt"}

const optionPrefix = "option-"

// Topic is one help document.
type Topic struct {
	Name    string
	Ext     string
	Content string
}

// IsMarkdown reports whether the topic should go through a Markdown renderer.
func (t *Topic) IsMarkdown() bool {
	return t.Ext == ".md"
}

// RenderFunc writes a topic for cmd.
type RenderFunc func(cmd *cobra.Command, topic *Topic) error

// Manager holds the loaded topics.
type Manager struct {
	topics map[string]*Topic
}

// Load reads every file under dir in fsys whose extension is in exts
// (DefaultExtensions when empty). A missing dir yields an empty manager.
func Load(fsys fs.FS, dir string, exts ...string) (*Manager, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	m := &Manager{topics: make(map[string]*Topic)}

	if _, err := fs.Stat(fsys, dir); err != nil {
		return m, nil
	}

	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := path.Ext(p)
		if !contains(exts, ext) {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = &Topic{Name: name, Ext: ext, Content: string(data)}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to load help topics from %s", dir)
	}
	return m, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Get finds a topic by name. Leading dashes are ignored and option topics
// match their bare flag name.
func (m *Manager) Get(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	if t, ok := m.topics[name]; ok {
		return t, true
	}
	t, ok := m.topics[optionPrefix+name]
	return t, ok
}

// Names returns the topic names in sorted order.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of topics.
func (m *Manager) Len() int {
	return len(m.topics)
}

// PlainRender writes the topic content unchanged.
func PlainRender(cmd *cobra.Command, topic *Topic) error {
	_, err := fmt.Fprint(cmd.OutOrStdout(), topic.Content)
	return err
}

// Install replaces root's help command with one that also knows the topics.
func (m *Manager) Install(root *cobra.Command, render RenderFunc) {
	if render == nil {
		render = PlainRender
	}
	name := root.Name()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: fmt.Sprintf("Help provides help for any command or topic.\n"+
			"Type %s help [command or topic] for full details, or\n"+
			"%s help topics to list the available topics.", name, name),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if c.IsAvailableCommand() {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return root.Help()
			}
			if args[0] == "topics" {
				m.list(cmd, name)
				return nil
			}
			if topic, ok := m.Get(args[0]); ok {
				return render(cmd, topic)
			}

			target, _, err := root.Find(args)
			if err != nil || target == nil {
				return errors.Newf(errors.ErrUsage, "unknown help topic %q", strings.Join(args, " "))
			}
			target.InitDefaultHelpFlag()
			return target.Help()
		},
	}
	root.SetHelpCommand(helpCmd)
}

func (m *Manager) list(cmd *cobra.Command, name string) {
	out := cmd.OutOrStdout()
	if m.Len() == 0 {
		fmt.Fprintln(out, "No help topics available.")
		return
	}

	var general, options []string
	for _, n := range m.Names() {
		if strings.HasPrefix(n, optionPrefix) {
			options = append(options, "--"+strings.TrimPrefix(n, optionPrefix))
		} else {
			general = append(general, n)
		}
	}

	fmt.Fprintln(out, "Available help topics:")
	if len(general) > 0 {
		fmt.Fprintln(out, "\nGeneral topics:")
		for _, n := range general {
			fmt.Fprintf(out, "  %s\n", n)
		}
	}
	if len(options) > 0 {
		fmt.Fprintln(out, "\nOption topics:")
		for _, n := range options {
			fmt.Fprintf(out, "  %s\n", n)
		}
	}
	fmt.Fprintf(out, "\nUse '%s help <topic>' to read about a specific topic.\n", name)
}
