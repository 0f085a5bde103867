// Package versions keeps the snapshot history of catalog templates.
package versions

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"rsv-catalog/internal/domain/catalog"
	"rsv-catalog/internal/domain/quotation"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/crypto/blake2b"
)

type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeModified ChangeType = "modified"
	ChangeRemoved  ChangeType = "removed"
)

type Change struct {
	Field       string     `json:"field"`
	OldValue    any        `json:"oldValue"`
	NewValue    any        `json:"newValue"`
	ChangeType  ChangeType `json:"changeType"`
	Description string     `json:"description"`
}

type Version struct {
	ID                string        `json:"id"`
	TemplateID        string        `json:"templateId"`
	Version           int           `json:"version"`
	Snapshot          catalog.Entry `json:"templateData"`
	Changes           []Change      `json:"changes"`
	CreatedBy         string        `json:"createdBy"`
	CreatedAt         time.Time     `json:"createdAt"`
	ChangeDescription string        `json:"changeDescription"`
	IsActive          bool          `json:"isActive"`
	Tags              []string      `json:"tags"`
	Checksum          string        `json:"checksum"`
}

// Checksum is the hex blake2b-256 digest of the snapshot's JSON encoding.
func Checksum(e catalog.Entry) (string, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

type Summary struct {
	Added    int `json:"added"`
	Modified int `json:"modified"`
	Removed  int `json:"removed"`
}

func summarize(changes []Change) Summary {
	var s Summary
	for _, c := range changes {
		switch c.ChangeType {
		case ChangeAdded:
			s.Added++
		case ChangeModified:
			s.Modified++
		case ChangeRemoved:
			s.Removed++
		}
	}
	return s
}

type Comparison struct {
	TemplateID  string   `json:"templateId"`
	Version1    int      `json:"version1"`
	Version2    int      `json:"version2"`
	Differences []Change `json:"differences"`
	Summary     Summary  `json:"summary"`
}

// compareSnapshots diffs the headline fields and then the items by id.
func compareSnapshots(a, b catalog.Entry) []Change {
	out := []Change{}
	fields := []struct {
		name     string
		old, new any
	}{
		{"name", a.Name, b.Name},
		{"description", a.Description, b.Description},
		{"type", a.Type, b.Type},
		{"tags", a.Tags, b.Tags},
		{"title", a.Title, b.Title},
		{"discount", a.Discount, b.Discount},
		{"tax", a.Tax, b.Tax},
	}
	for _, f := range fields {
		if !cmp.Equal(f.old, f.new, cmpopts.EquateEmpty()) {
			out = append(out, Change{
				Field:       f.name,
				OldValue:    f.old,
				NewValue:    f.new,
				ChangeType:  ChangeModified,
				Description: fmt.Sprintf("Campo %s foi modificado", f.name),
			})
		}
	}
	return append(out, compareItems(a.Items, b.Items)...)
}

func compareItems(before, after []quotation.Item) []Change {
	out := []Change{}
	find := func(items []quotation.Item, id string) (quotation.Item, bool) {
		i := slices.IndexFunc(items, func(it quotation.Item) bool { return it.ID == id })
		if i < 0 {
			return quotation.Item{}, false
		}
		return items[i], true
	}

	for _, it := range after {
		if _, ok := find(before, it.ID); !ok {
			out = append(out, Change{Field: "items", NewValue: it, ChangeType: ChangeAdded, Description: fmt.Sprintf("Item %q foi adicionado", it.Name)})
		}
	}
	for _, it := range before {
		if _, ok := find(after, it.ID); !ok {
			out = append(out, Change{Field: "items", OldValue: it, ChangeType: ChangeRemoved, Description: fmt.Sprintf("Item %q foi removido", it.Name)})
		}
	}
	for _, it := range before {
		if next, ok := find(after, it.ID); ok && !cmp.Equal(it, next, cmpopts.EquateEmpty()) {
			out = append(out, Change{Field: "items", OldValue: it, NewValue: next, ChangeType: ChangeModified, Description: fmt.Sprintf("Item %q foi modificado", it.Name)})
		}
	}
	return out
}

// DetectChanges lists what an edit changed, for recording alongside a new version.
func DetectChanges(old, next catalog.Entry) []Change {
	out := []Change{}
	basic := []struct {
		name      string
		old, next string
	}{
		{"name", old.Name, next.Name},
		{"description", old.Description, next.Description},
		{"mainCategory", old.MainCategory, next.MainCategory},
		{"title", old.Title, next.Title},
	}
	for _, f := range basic {
		if f.old != f.next {
			out = append(out, Change{
				Field:       f.name,
				OldValue:    f.old,
				NewValue:    f.next,
				ChangeType:  ChangeModified,
				Description: fmt.Sprintf("%s alterado de %q para %q", f.name, f.old, f.next),
			})
		}
	}

	for _, tag := range next.Tags {
		if !slices.Contains(old.Tags, tag) {
			out = append(out, Change{Field: "tags", NewValue: tag, ChangeType: ChangeAdded, Description: fmt.Sprintf("Tag %q adicionada", tag)})
		}
	}
	for _, tag := range old.Tags {
		if !slices.Contains(next.Tags, tag) {
			out = append(out, Change{Field: "tags", OldValue: tag, ChangeType: ChangeRemoved, Description: fmt.Sprintf("Tag %q removida", tag)})
		}
	}

	if len(old.Items) != len(next.Items) {
		out = append(out, Change{
			Field:       "items",
			OldValue:    len(old.Items),
			NewValue:    len(next.Items),
			ChangeType:  ChangeModified,
			Description: fmt.Sprintf("Número de itens alterado de %d para %d", len(old.Items), len(next.Items)),
		})
	}
	return out
}
