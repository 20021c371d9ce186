package envstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/canvasenv-cli/canvasenv/filesystem"
	"github.com/canvasenv-cli/canvasenv/key"
	"github.com/canvasenv-cli/canvasenv/where"
	"github.com/spf13/viper"
)

// Managed block markers. Everything between them belongs to this tool and
// nothing outside them is ever touched, so clearing cannot delete an
// unrelated user line that happens to share an export prefix.
const (
	blockBegin = "# >>> canvasenv credentials >>>"
	blockEnd   = "# <<< canvasenv credentials <<<"
)

// ProfileStore persists environment variables as export statements inside a
// marker-delimited block appended to the user's shell startup files.
type ProfileStore struct {
	profiles []string
}

// NewProfileStore resolves the managed profile files from configuration,
// falling back to ~/.bashrc and ~/.zshrc.
func NewProfileStore() *ProfileStore {
	configured := viper.GetStringSlice(key.StoreProfiles)

	var profiles []string
	if len(configured) == 0 {
		home := where.Home()
		profiles = []string{
			filepath.Join(home, ".bashrc"),
			filepath.Join(home, ".zshrc"),
		}
	} else {
		// Copy before expanding; the configured slice belongs to viper.
		profiles = make([]string, 0, len(configured))
		for _, p := range configured {
			profiles = append(profiles, expandHome(p))
		}
	}

	return &ProfileStore{profiles: profiles}
}

// Profiles returns the shell startup files this store manages.
func (s *ProfileStore) Profiles() []string {
	return s.profiles
}

// SetPersistent writes an export statement for name into the managed block
// of every profile file, replacing any previous statement for that name.
func (s *ProfileStore) SetPersistent(name, value string) error {
	line := fmt.Sprintf("export %s=%s", name, shellescape.Quote(value))

	for _, profile := range s.profiles {
		if err := s.rewrite(profile, func(entries []blockEntry) []blockEntry {
			for i, e := range entries {
				if e.name == name {
					entries[i].value = value
					entries[i].line = line
					return entries
				}
			}
			return append(entries, blockEntry{name: name, value: value, line: line})
		}); err != nil {
			return err
		}
	}

	return nil
}

// ClearPersistent removes the export statement for name from the managed
// block of every profile file. Missing files and never-set names are not
// errors.
func (s *ProfileStore) ClearPersistent(name string) error {
	for _, profile := range s.profiles {
		if exists, _ := filesystem.API().Exists(profile); !exists {
			continue
		}

		if err := s.rewrite(profile, func(entries []blockEntry) []blockEntry {
			kept := entries[:0]
			for _, e := range entries {
				if e.name != name {
					kept = append(kept, e)
				}
			}
			return kept
		}); err != nil {
			return err
		}
	}

	return nil
}

// Lookup reads back the persisted value for name from the first managed
// profile that carries it.
func (s *ProfileStore) Lookup(name string) (string, bool, error) {
	fs := filesystem.API()

	for _, profile := range s.profiles {
		if exists, _ := fs.Exists(profile); !exists {
			continue
		}

		data, err := fs.ReadFile(profile)
		if err != nil {
			return "", false, fmt.Errorf("read %s: %w", profile, err)
		}

		_, entries, _, _ := splitBlock(strings.Split(string(data), "\n"))
		for _, e := range entries {
			if e.name == name {
				return e.value, true, nil
			}
		}
	}

	return "", false, nil
}

// blockEntry is one line of the managed block. Lines that parse as export
// statements carry their variable name and unquoted value; anything else is
// opaque and is preserved verbatim across rewrites.
type blockEntry struct {
	name  string
	value string
	line  string
}

// rewrite loads a profile file, applies mutate to the managed block entries,
// and writes the file back. A file whose entire content was the managed
// block is removed when the block empties; files that never held a block are
// left untouched by clears.
func (s *ProfileStore) rewrite(profile string, mutate func([]blockEntry) []blockEntry) error {
	fs := filesystem.API()

	var lines []string
	if exists, _ := fs.Exists(profile); exists {
		data, err := fs.ReadFile(profile)
		if err != nil {
			return fmt.Errorf("read %s: %w", profile, err)
		}
		lines = strings.Split(string(data), "\n")
	}

	before, entries, after, hadBlock := splitBlock(lines)
	entries = mutate(entries)

	if !hadBlock && len(entries) == 0 {
		// Nothing of ours in this file and nothing to add.
		return nil
	}

	out := make([]string, 0, len(before)+len(entries)+len(after)+3)
	out = append(out, before...)
	if len(entries) > 0 {
		if len(out) > 0 && out[len(out)-1] != "" {
			out = append(out, "")
		}
		out = append(out, blockBegin)
		for _, e := range entries {
			out = append(out, e.line)
		}
		out = append(out, blockEnd)
	}
	out = append(out, after...)

	if len(out) == 0 {
		// The file held only the managed block; leave no trace.
		if exists, _ := fs.Exists(profile); exists {
			return fs.Remove(profile)
		}
		return nil
	}

	content := strings.Join(out, "\n")
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	if err := fs.MkdirAll(filepath.Dir(profile), os.ModePerm); err != nil {
		return fmt.Errorf("create profile directory: %w", err)
	}
	if err := fs.WriteFile(profile, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", profile, err)
	}

	return nil
}

// splitBlock partitions profile lines into the text before the managed
// block, the block's entries, and the text after it. A block missing its end
// marker extends to the end of the file; its lines are preserved and the
// next rewrite reinstates the marker. A trailing newline artifact (single
// empty last line) is dropped so rewrites stay stable.
func splitBlock(lines []string) (before []string, entries []blockEntry, after []string, hadBlock bool) {
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	inBlock := false
	for _, line := range lines {
		switch {
		case !hadBlock && strings.TrimSpace(line) == blockBegin:
			inBlock = true
			hadBlock = true
		case inBlock && strings.TrimSpace(line) == blockEnd:
			inBlock = false
		case inBlock:
			if e, ok := parseEntry(line); ok {
				entries = append(entries, e)
			} else {
				entries = append(entries, blockEntry{line: line})
			}
		case hadBlock:
			after = append(after, line)
		default:
			before = append(before, line)
		}
	}

	return before, entries, after, hadBlock
}

// parseEntry extracts the variable name and value from a managed export statement.
func parseEntry(line string) (blockEntry, bool) {
	trimmed := strings.TrimSpace(line)
	rest, ok := strings.CutPrefix(trimmed, "export ")
	if !ok {
		return blockEntry{}, false
	}

	name, value, ok := strings.Cut(rest, "=")
	if !ok || name == "" {
		return blockEntry{}, false
	}

	return blockEntry{name: name, value: unquote(value), line: trimmed}, true
}

// unquote reverses the shell quoting applied when the value was written.
func unquote(value string) string {
	if len(value) >= 2 && strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'") {
		inner := value[1 : len(value)-1]
		return strings.ReplaceAll(inner, `'"'"'`, "'")
	}
	return value
}
