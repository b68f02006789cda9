package cli

import "text/template"

const taskTemplate = `
=== Task Details ===

Title:       {{.Title}}
ID:          {{.ID}}
Status:      {{if .Completed}}completed{{else}}pending{{end}}
{{- if .Category }}
Category:    {{.Category}}
{{- end}}
{{- if .DueDate }}
Due:         {{due .DueDate}}
{{- end}}
Created:     {{.CreatedAt.Format "2006-01-02 15:04:05"}}
Updated:     {{.UpdatedAt.Format "2006-01-02 15:04:05"}}
{{- if .Description }}

Description:
---
{{.Description}}
---
{{- end}}
`

var taskTmpl = template.Must(template.New("task").Funcs(template.FuncMap{
	"due": formatDue,
}).Parse(taskTemplate))
