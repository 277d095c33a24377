// ABOUTME: Schema-based HTML renderer for the admin UI.
// ABOUTME: Generates semantic HTML with Tailwind CSS from resource schemas.

package admin

import (
	"fmt"
	"html"
	"strings"
)

const inputClass = "mt-1 block w-full rounded border-gray-300 shadow-sm px-3 py-2 border"

// RenderResourceList generates a table list view from a ResourceSchema
func RenderResourceList(schema ResourceSchema, resources []map[string]any) string {
	var sb strings.Builder

	sb.WriteString(`<table class="min-w-full divide-y divide-gray-200">`)
	sb.WriteString(`<thead class="bg-gray-50"><tr>`)

	for _, colName := range schema.ListColumns {
		if field := findField(schema.Fields, colName); field != nil {
			fmt.Fprintf(&sb, `<th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">%s</th>`,
				html.EscapeString(field.Display))
		}
	}
	if len(schema.Actions) > 0 {
		sb.WriteString(`<th class="px-6 py-3 text-right text-xs font-medium text-gray-500 uppercase">Actions</th>`)
	}
	sb.WriteString(`</tr></thead>`)
	sb.WriteString(`<tbody class="bg-white divide-y divide-gray-200">`)

	if len(resources) == 0 {
		fmt.Fprintf(&sb, `<tr><td colspan="%d" class="px-6 py-4 text-sm text-gray-400">No %s yet</td></tr>`,
			len(schema.ListColumns)+1, html.EscapeString(strings.ToLower(schema.Name)))
	}

	for _, resource := range resources {
		resourceID := formatValue(resource["id"])
		fmt.Fprintf(&sb, `<tr id="row-%s">`, html.EscapeString(resourceID))

		for _, colName := range schema.ListColumns {
			fmt.Fprintf(&sb, `<td class="px-6 py-4 whitespace-nowrap text-sm text-gray-900">%s</td>`,
				html.EscapeString(formatValue(resource[colName])))
		}

		if len(schema.Actions) > 0 {
			sb.WriteString(`<td class="px-6 py-4 whitespace-nowrap text-right text-sm space-x-3">`)
			sb.WriteString(RenderActions(schema.Actions, resourceID))
			sb.WriteString(`</td>`)
		}

		sb.WriteString(`</tr>`)
	}

	sb.WriteString(`</tbody></table>`)
	return sb.String()
}

// RenderResourceForm generates a create/edit form from a ResourceSchema that
// posts to action.
func RenderResourceForm(schema ResourceSchema, data map[string]any, action string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `<form method="post" action="%s" class="bg-white rounded-lg shadow p-6 space-y-4 max-w-2xl">`,
		html.EscapeString(action))

	for _, field := range schema.Fields {
		if !field.Editable {
			continue
		}

		sb.WriteString(`<div>`)
		fmt.Fprintf(&sb, `<label for="%s" class="block text-sm font-medium text-gray-700">%s</label>`,
			html.EscapeString(field.Name), html.EscapeString(field.Display))

		value := ""
		if data != nil {
			value = formatValue(data[field.Name])
		}

		switch field.Type {
		case "text":
			fmt.Fprintf(&sb, `<textarea id="%s" name="%s" rows="4" %s class="%s">%s</textarea>`,
				html.EscapeString(field.Name),
				html.EscapeString(field.Name),
				requiredAttr(field.Required),
				inputClass,
				html.EscapeString(value))

		case "select":
			fmt.Fprintf(&sb, `<select id="%s" name="%s" %s class="%s">`,
				html.EscapeString(field.Name),
				html.EscapeString(field.Name),
				requiredAttr(field.Required),
				inputClass)
			for _, opt := range field.Options {
				selected := ""
				if opt.Value == value {
					selected = " selected"
				}
				fmt.Fprintf(&sb, `<option value="%s"%s>%s</option>`,
					html.EscapeString(opt.Value), selected, html.EscapeString(opt.Label))
			}
			sb.WriteString(`</select>`)

		case "url":
			fmt.Fprintf(&sb, `<input type="url" id="%s" name="%s"%s %s class="%s">`,
				html.EscapeString(field.Name),
				html.EscapeString(field.Name),
				valueAttr(value),
				requiredAttr(field.Required),
				inputClass)

		default: // string and others
			fmt.Fprintf(&sb, `<input type="text" id="%s" name="%s"%s %s class="%s">`,
				html.EscapeString(field.Name),
				html.EscapeString(field.Name),
				valueAttr(value),
				requiredAttr(field.Required),
				inputClass)
		}

		if field.Help != "" {
			fmt.Fprintf(&sb, `<p class="mt-1 text-xs text-gray-500">%s</p>`, html.EscapeString(field.Help))
		}
		sb.WriteString(`</div>`)
	}

	sb.WriteString(`<div class="flex gap-4">`)
	sb.WriteString(`<button type="submit" class="px-4 py-2 bg-purple-600 text-white rounded hover:bg-purple-700">Save</button>`)
	fmt.Fprintf(&sb, `<a href="/admin/%s" class="px-4 py-2 bg-gray-200 text-gray-700 rounded hover:bg-gray-300">Cancel</a>`,
		html.EscapeString(schema.Slug))
	sb.WriteString(`</div>`)

	sb.WriteString(`</form>`)
	return sb.String()
}

// RenderActions generates action buttons from ActionSchema
func RenderActions(actions []ActionSchema, resourceID string) string {
	var sb strings.Builder

	for i, action := range actions {
		if i > 0 {
			sb.WriteString(" ")
		}

		endpoint := strings.ReplaceAll(action.Endpoint, "{id}", resourceID)
		label := html.EscapeString(titleCase(action.Name))

		if action.HTTPMethod == "GET" {
			fmt.Fprintf(&sb, `<a href="%s" class="text-blue-600 hover:text-blue-900">%s</a>`,
				html.EscapeString(endpoint), label)
			continue
		}

		// htmx for other methods; the row is swapped out on success
		confirmAttr := ""
		if action.Confirm {
			confirmAttr = ` hx-confirm="Delete this item?"`
		}
		cssClass := "text-blue-600 hover:text-blue-900"
		if action.HTTPMethod == "DELETE" {
			cssClass = "text-red-600 hover:text-red-900"
		}
		fmt.Fprintf(&sb, `<button %s="%s"%s hx-target="closest tr" hx-swap="outerHTML" class="%s">%s</button>`,
			getHTMXAttribute(action.HTTPMethod),
			html.EscapeString(endpoint),
			confirmAttr,
			cssClass,
			label)
	}

	return sb.String()
}

func findField(fields []FieldSchema, name string) *FieldSchema {
	for i := range fields {
		if fields[i].Name == name {
			return &fields[i]
		}
	}
	return nil
}

func formatValue(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func valueAttr(value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf(` value="%s"`, html.EscapeString(value))
}

func requiredAttr(required bool) string {
	if required {
		return "required"
	}
	return ""
}

func getHTMXAttribute(method string) string {
	switch method {
	case "POST":
		return "hx-post"
	case "DELETE":
		return "hx-delete"
	case "PUT":
		return "hx-put"
	case "PATCH":
		return "hx-patch"
	default:
		return "hx-post"
	}
}
