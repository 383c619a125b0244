package style

import "strings"

// TemplateMarker separates the master-page template name from the style name
// in presentation state notifications, e.g. "title~LT~Titel".
const TemplateMarker = "~LT~"

// PresentationName is one of the presentation object styles the engine
// reports by its backend-locale label.
type PresentationName int

const (
	PresentationUnmatched PresentationName = iota
	PresentationTitle
	PresentationSubtitle
	PresentationOutline1
	PresentationOutline2
	PresentationOutline3
	PresentationOutline4
	PresentationOutline5
	PresentationOutline6
	PresentationOutline7
	PresentationOutline8
	PresentationOutline9
	PresentationBackground
	PresentationBackgroundObjects
	PresentationNotes
)

var presentationIDs = [...]string{
	PresentationUnmatched:         "",
	PresentationTitle:             "title",
	PresentationSubtitle:          "subtitle",
	PresentationOutline1:          "outline1",
	PresentationOutline2:          "outline2",
	PresentationOutline3:          "outline3",
	PresentationOutline4:          "outline4",
	PresentationOutline5:          "outline5",
	PresentationOutline6:          "outline6",
	PresentationOutline7:          "outline7",
	PresentationOutline8:          "outline8",
	PresentationOutline9:          "outline9",
	PresentationBackground:        "background",
	PresentationBackgroundObjects: "backgroundobjects",
	PresentationNotes:             "notes",
}

// State notifications use the engine's German programmatic labels regardless
// of the UI language.
var presentationLabels = map[string]PresentationName{
	"Titel":              PresentationTitle,
	"Untertitel":         PresentationSubtitle,
	"Gliederung 1":       PresentationOutline1,
	"Gliederung 2":       PresentationOutline2,
	"Gliederung 3":       PresentationOutline3,
	"Gliederung 4":       PresentationOutline4,
	"Gliederung 5":       PresentationOutline5,
	"Gliederung 6":       PresentationOutline6,
	"Gliederung 7":       PresentationOutline7,
	"Gliederung 8":       PresentationOutline8,
	"Gliederung 9":       PresentationOutline9,
	"Hintergrund":        PresentationBackground,
	"Hintergrundobjekte": PresentationBackgroundObjects,
	"Notizen":            PresentationNotes,
}

// ID returns the catalog identifier for the name; empty when unmatched.
func (p PresentationName) ID() string {
	if p < 0 || int(p) >= len(presentationIDs) {
		return ""
	}
	return presentationIDs[p]
}

// Matched reports whether the name resolved to a known presentation style.
func (p PresentationName) Matched() bool {
	return p != PresentationUnmatched && p.ID() != ""
}

func (p PresentationName) String() string {
	if !p.Matched() {
		return "unmatched"
	}
	return p.ID()
}

// ParsePresentationState strips the template prefix from a presentation state
// and maps the remaining label onto a PresentationName. A state without the
// marker, or with an unknown label, yields PresentationUnmatched.
func ParsePresentationState(state string) PresentationName {
	_, label, ok := strings.Cut(state, TemplateMarker)
	if !ok {
		return PresentationUnmatched
	}
	if name, ok := presentationLabels[label]; ok {
		return name
	}
	return PresentationUnmatched
}

// Label returns the engine label reported for the name, e.g. "Gliederung 2".
func (p PresentationName) Label() string {
	for label, name := range presentationLabels {
		if name == p {
			return label
		}
	}
	return ""
}

// ParsePresentationID maps a catalog identifier such as "outline2" back onto
// its PresentationName.
func ParsePresentationID(id string) PresentationName {
	if id == "" {
		return PresentationUnmatched
	}
	for i, candidate := range presentationIDs {
		if candidate == id {
			return PresentationName(i)
		}
	}
	return PresentationUnmatched
}
