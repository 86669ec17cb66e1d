package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// A shortcut maps a keyword to something to print. Plain entries are
// word-wrapped, raw entries preserve spacing and print as raster
// art, dynamic entries are rendered at print time.
type shortcut struct {
	Text    string `yaml:"text"`
	Raw     bool   `yaml:"raw"`
	Dynamic string `yaml:"dynamic"`
}

var dynamics = map[string]func() string{
	"time": func() string {
		return "Time: " + time.Now().Format("15:04:05")
	},
	"date": func() string {
		return "Date: " + time.Now().Format("Monday, January 2 2006")
	},
	"datetime": func() string {
		return time.Now().Format("Monday, January 2 2006  15:04:05")
	},
}

var shortcuts = map[string]shortcut{
	"time": {Dynamic: "time"},
	"date": {Dynamic: "date"},
	"now":  {Dynamic: "datetime"},

	"test": {Text: ">>> This is a test message <<<"},

	"focus": {Text: "Salvation must grow out of understanding; " +
		"total understanding can follow only from total " +
		"experience, and experience must be won by the " +
		"laborious discipline of shaping one's absolute attention."},

	"cat": {Raw: true, Text: ` /\_/\
( o.o )
 > ^ <`},

	"robot": {Raw: true, Text: ` [o_o]
 /|_|\
  / \`},

	"coffee": {Raw: true, Text: ` ( (
  ) )
........
|      |]
\      /
 ` + "`----'"},

	"heart": {Raw: true, Text: `  ****  ****
 ****** ******
 *************
  ***********
   *********
    *******
     *****
      ***
       *`},
}

// loadShortcutFiles merges YAML registries over the built-ins. Later
// files win, so users can shadow a built-in keyword.
func loadShortcutFiles(paths []string) error {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("error reading shortcuts file %s: %v", path, err)
		}
		extra := make(map[string]shortcut)
		if err := yaml.Unmarshal(data, extra); err != nil {
			return fmt.Errorf("error parsing shortcuts file %s: %v", path, err)
		}
		for k, v := range extra {
			if v.Dynamic != "" {
				if _, ok := dynamics[v.Dynamic]; !ok {
					return fmt.Errorf("shortcut %q in %s references unknown dynamic %q", k, path, v.Dynamic)
				}
			}
			shortcuts[strings.ToLower(k)] = v
		}
		logVerbose("loaded %d shortcuts from %s", len(extra), path)
	}
	return nil
}

// resolveShortcut looks up a keyword, stripping any leading "!" and
// lowercasing first. ok is false if the keyword is unknown.
func resolveShortcut(keyword string) (text string, raw bool, ok bool) {
	key := strings.ToLower(strings.TrimSpace(strings.TrimLeft(keyword, "!")))
	s, ok := shortcuts[key]
	if !ok {
		return "", false, false
	}
	if s.Dynamic != "" {
		return dynamics[s.Dynamic](), s.Raw, true
	}
	return s.Text, s.Raw, true
}

// listShortcuts returns all shortcut keywords, sorted.
func listShortcuts() []string {
	names := make([]string, 0, len(shortcuts))
	for k := range shortcuts {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
