package style

// TopStyleCount and ExtraStyleCount window the text-document paragraph style
// list. The engine returns paragraph styles in a stable order with the
// canonical defaults first; the first TopStyleCount entries are shown as top
// styles and the next ExtraStyleCount as regular styles.
const (
	TopStyleCount   = 7
	ExtraStyleCount = 12
)

// Command is a named backend action listed alongside the styles.
type Command struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// Catalog is the style snapshot delivered by the engine for one document.
type Catalog struct {
	ParagraphStyles []string  `json:"ParagraphStyles,omitempty" yaml:"paragraph_styles,omitempty"`
	Default         []string  `json:"Default,omitempty" yaml:"default,omitempty"`
	CellStyles      []string  `json:"CellStyles,omitempty" yaml:"cell_styles,omitempty"`
	Commands        []Command `json:"Commands,omitempty" yaml:"commands,omitempty"`
}

// Labeler turns a backend name into the text shown to the user.
type Labeler interface {
	Label(name string) string
}

// Build produces the dropdown rows for a catalog. The placeholder row is always
// first; commands, top styles and regular styles follow, each group preceded
// by a separator when it is non-empty.
func Build(cat Catalog, doc DocType, placeholder string, labels Labeler) []Entry {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	entries := []Entry{{ID: placeholder, Label: labels.Label(placeholder), Kind: KindPlaceholder}}

	top, regular := sources(cat, doc)

	if len(cat.Commands) > 0 {
		entries = append(entries, separator())
		for _, command := range cat.Commands {
			entries = append(entries, Entry{ID: command.ID, Label: labels.Label(command.Text), Kind: KindCommand})
		}
	}
	if len(top) > 0 {
		entries = append(entries, separator())
		for _, name := range top {
			entries = append(entries, Entry{ID: name, Label: labels.Label(name), Kind: KindTopStyle})
		}
	}
	if len(regular) > 0 {
		entries = append(entries, separator())
		for _, name := range regular {
			entries = append(entries, Entry{ID: name, Label: labels.Label(name), Kind: KindStyle})
		}
	}
	return entries
}

func sources(cat Catalog, doc DocType) (top, regular []string) {
	switch doc {
	case DocText:
		return window(cat.ParagraphStyles, 0, TopStyleCount),
			window(cat.ParagraphStyles, TopStyleCount, TopStyleCount+ExtraStyleCount)
	case DocPresentation, DocDrawing:
		return nil, cat.Default
	case DocSpreadsheet:
		return nil, cat.CellStyles
	default:
		return nil, nil
	}
}

// window returns names[from:to], clamped to the slice bounds.
func window(names []string, from, to int) []string {
	if from >= len(names) {
		return nil
	}
	if to > len(names) {
		to = len(names)
	}
	return names[from:to]
}

func separator() Entry {
	return Entry{Label: separatorLabel, Kind: KindSeparator}
}
