package domain

import "strings"

type Namespace string

const (
	NamespaceInstructions Namespace = "instructions"
	NamespaceCustomers    Namespace = "customers"
)

// Extension is shared by instruction prompts and customer personas.
const Extension = ".txt"

// Logical instruction prompt names.
const (
	CoreInstruction         = "core_instruction"
	VendorModel             = "vendor_model"
	MeetingContext          = "meeting_context"
	ResponseEvaluationModel = "response_evaluation_model"
	MeetingEvaluationModel  = "meeting_evaluation_model"
	ReportModel             = "report_model"
	StrategyGenerationModel = "strategy_generation_model"
)

type Profile struct {
	Name        string
	DisplayName string
	Role        string
	Path        string
}

// ParseProfile picks the optional "Name:" and "Role:" header lines out of
// a persona body.
func ParseProfile(name, path, body string) Profile {
	p := Profile{Name: name, DisplayName: name, Path: path}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Name:") && p.DisplayName == name:
			if v := strings.TrimSpace(strings.TrimPrefix(line, "Name:")); v != "" {
				p.DisplayName = v
			}
		case strings.HasPrefix(line, "Role:") && p.Role == "":
			p.Role = strings.TrimSpace(strings.TrimPrefix(line, "Role:"))
		}
	}
	return p
}

// ComposeSystemContext joins core instruction, persona, vendor model and
// meeting context with blank lines. When any of the three surrounding
// prompts is missing the persona alone is the context.
func ComposeSystemContext(core, persona, vendor, meeting string) string {
	if core == "" || persona == "" || vendor == "" || meeting == "" {
		return persona
	}
	return core + "\n\n" + persona + "\n\n" + vendor + "\n\n" + meeting
}
