package modal

import (
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
)

// chromeTemplate lays out the dialog. The recognised keys are title,
// save_button and cancel_button; error and body are filled by the modal.
const chromeTemplate = `{{.title}}
{{if .error}}
{{.error}}
{{end}}
{{.body}}

{{.save_button}}  {{.cancel_button}}`

var chrome = template.Must(template.New("modal").Option("missingkey=zero").Parse(chromeTemplate))

// Styles control the dialog chrome.
type Styles struct {
	Frame          lipgloss.Style
	Title          lipgloss.Style
	Error          lipgloss.Style
	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	ButtonDisabled lipgloss.Style
}

// DefaultStyles returns unthemed styles.
func DefaultStyles() Styles {
	return Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
		Title:          lipgloss.NewStyle().Bold(true),
		Error:          lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Button:         lipgloss.NewStyle().Padding(0, 1),
		ButtonFocused:  lipgloss.NewStyle().Padding(0, 1).Reverse(true),
		ButtonDisabled: lipgloss.NewStyle().Padding(0, 1).Faint(true),
	}
}

func renderChrome(values map[string]string) (string, error) {
	var b strings.Builder
	if err := chrome.Execute(&b, values); err != nil {
		return "", err
	}
	return b.String(), nil
}
