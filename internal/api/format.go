package telegram

import (
	"fmt"
	"strings"

	"crop-doctor/internal/domain/entity"
)

// formatDiagnosis собирает ответ на фото: метки, средство и справки.
func formatDiagnosis(d *entity.Diagnosis) string {
	var sb strings.Builder
	ident := d.Identification

	plant := ident.PlantName
	if plant == "" {
		plant = "Unknown plant"
	}
	fmt.Fprintf(&sb, "🌱 %s — %s\n", plant, ident.Label())
	fmt.Fprintf(&sb, "Confidence: %.2f%%\n", ident.Confidence*100)

	sb.WriteString("\n💊 Suggested remedy\n")
	if d.Remedy.Found() {
		sb.WriteString(d.Remedy.Remedy)
	} else {
		sb.WriteString("No remedy found. Consult local agricultural experts.")
	}
	sb.WriteString("\n")

	for _, desc := range []entity.Description{d.Disease, d.Plant} {
		if !desc.Found {
			continue
		}
		sb.WriteString("\n")
		sb.WriteString(formatDescription(desc))
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func formatRemedy(r entity.RemedyResolution) string {
	if !r.Found() {
		return fmt.Sprintf("💊 %s: %s", r.Label, r.Remedy)
	}
	return fmt.Sprintf("💊 %s\n%s", r.Label, r.Remedy)
}

func formatDescription(d entity.Description) string {
	if !d.Found {
		return fmt.Sprintf("📖 %s: %s", d.Name, d.Text)
	}

	title := d.Title
	if title == "" {
		title = d.Name
	}
	text := fmt.Sprintf("📖 About %s\n%s", title, d.Text)
	if d.URL != "" {
		text += "\nRead more: " + d.URL
	}
	return text
}
