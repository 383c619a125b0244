package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/atomicstack/styleselect/internal/style"
)

// CommandValues is the JSON body of a commandvalues frame.
type CommandValues struct {
	CommandName   string        `json:"commandName"`
	CommandValues style.Catalog `json:"commandValues"`
}

// ParseCommandValues decodes a commandvalues payload.
func ParseCommandValues(payload string) (CommandValues, error) {
	var values CommandValues
	if err := json.Unmarshal([]byte(payload), &values); err != nil {
		return CommandValues{}, fmt.Errorf("decode command values: %w", err)
	}
	return values, nil
}

// Load asks the engine to open url.
func Load(url string) string {
	return "load url=" + url
}

// StatusRequest asks for the document status.
func StatusRequest() string {
	return "status"
}

// CommandValuesRequest asks for the values of command, e.g. the style catalog
// for ".uno:StyleApply".
func CommandValuesRequest(command string) string {
	return "commandvalues command=" + command
}

// Uno runs command without arguments.
func Uno(command string) string {
	return "uno " + command
}

type unoArg struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type applyStyleArgs struct {
	Style      unoArg `json:"Style"`
	FamilyName unoArg `json:"FamilyName"`
}

// ApplyStyle encodes a ".uno:StyleApply" request for name within family.
func ApplyStyle(name, family string) (string, error) {
	args, err := json.Marshal(applyStyleArgs{
		Style:      unoArg{Type: "string", Value: name},
		FamilyName: unoArg{Type: "string", Value: family},
	})
	if err != nil {
		return "", fmt.Errorf("encode style arguments: %w", err)
	}
	return Uno(style.ApplyCommand) + " " + string(args), nil
}
