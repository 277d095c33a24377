// ABOUTME: Validates composed content against the registry allow-list.
// ABOUTME: Walks nested blocks and reports every occurrence whose type is not allowed.

package registry

import (
	"fmt"
	"strconv"
	"strings"
)

// ContentBlock is one block in a saved content document.
type ContentBlock struct {
	Name        string         `json:"name"`
	Fields      map[string]any `json:"fields,omitempty"`
	InnerBlocks []ContentBlock `json:"inner_blocks,omitempty"`
}

// Violation locates a disallowed block. Path is the dotted index path from
// the document root, e.g. "2.0" for the first inner block of the third block.
type Violation struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// ContentError lists every violation found in a document.
type ContentError struct {
	Violations []Violation
}

func (e *ContentError) Error() string {
	names := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		names[i] = fmt.Sprintf("%s at %s", v.Name, v.Path)
	}
	return "content contains disallowed block types: " + strings.Join(names, ", ")
}

// ValidateContent returns a *ContentError when any block in doc, at any
// depth, has a type outside the allow-list.
func (r *Registry) ValidateContent(doc []ContentBlock) error {
	var violations []Violation
	r.walk(doc, "", &violations)
	if len(violations) > 0 {
		return &ContentError{Violations: violations}
	}
	return nil
}

func (r *Registry) walk(blocks []ContentBlock, prefix string, out *[]Violation) {
	for i, b := range blocks {
		path := prefix + strconv.Itoa(i)
		if !r.Allowed(b.Name) {
			*out = append(*out, Violation{Path: path, Name: b.Name})
		}
		r.walk(b.InnerBlocks, path+".", out)
	}
}
