package versions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"rsv-catalog/internal/domain/catalog"
	"rsv-catalog/internal/pkg/clock"
	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	exportFormatVersion = "1.0"
	exportAllTemplates  = "all"
	recentVersionsLimit = 10
)

type HistoryEntry struct {
	Version     int       `json:"version"`
	Date        time.Time `json:"date"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Changes     []Change  `json:"changes"`
}

type VersionCount struct {
	TemplateID string `json:"templateId"`
	Versions   int    `json:"versions"`
}

type Stats struct {
	TotalVersions              int           `json:"totalVersions"`
	TemplatesWithVersions      int           `json:"templatesWithVersions"`
	AverageVersionsPerTemplate float64       `json:"averageVersionsPerTemplate"`
	MostVersionedTemplate      *VersionCount `json:"mostVersionedTemplate"`
	RecentVersions             []Version     `json:"recentVersions"`
}

type ExportDocument struct {
	Versions   []Version `json:"versions"`
	ExportedAt time.Time `json:"exportedAt"`
	TemplateID string    `json:"templateId"`
	Version    string    `json:"version"`
}

type Manager interface {
	SaveVersion(ctx context.Context, e catalog.Entry, changes []Change, description, author string) (*Version, error)
	Versions(ctx context.Context, templateID string) []Version
	Version(ctx context.Context, templateID string, version int) (*Version, bool)
	ActiveVersion(ctx context.Context, templateID string) (*Version, bool)
	Restore(ctx context.Context, templateID string, version int, author string) (*catalog.Entry, error)
	Compare(ctx context.Context, templateID string, v1, v2 int) (*Comparison, error)
	ChangeHistory(ctx context.Context, templateID string) []HistoryEntry
	Stats(ctx context.Context) Stats
	Cleanup(ctx context.Context, keep int) (int, error)
	Export(ctx context.Context, templateID string) (*ExportDocument, error)
	Import(ctx context.Context, data []byte) (int, error)
}

type managerImpl struct {
	mu     sync.Mutex
	db     shared.Persistence
	clock  clock.Clock
	logger *slog.Logger
}

func NewManager(db shared.Persistence, clk clock.Clock, logger *slog.Logger) Manager {
	return &managerImpl{db: db, clock: clk, logger: logger}
}

func (m *managerImpl) all(ctx context.Context) []Version {
	return shared.LoadList[Version](ctx, m.db, shared.KeyTemplateVersions)
}

func (m *managerImpl) persist(ctx context.Context, all []Version) error {
	if err := m.db.Save(ctx, shared.KeyTemplateVersions, all); err != nil {
		return errs.Wrap(err, "failed to save template versions")
	}
	return nil
}

// SaveVersion appends a snapshot numbered one past the highest existing version
// and makes it the only active one for the template.
func (m *managerImpl) SaveVersion(ctx context.Context, e catalog.Entry, changes []Change, description, author string) (*Version, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.saveLocked(ctx, e, changes, description, author)
}

func (m *managerImpl) saveLocked(ctx context.Context, e catalog.Entry, changes []Change, description, author string) (*Version, error) {
	if e.ID == "" {
		return nil, errs.Wrap(errs.ErrInvalidTemplate, "template id is required")
	}
	if author == "" {
		author = shared.DefaultActorID
	}
	if changes == nil {
		changes = []Change{}
	}

	snapshot := e.Clone()
	sum, err := Checksum(snapshot)
	if err != nil {
		return nil, errs.Wrap(err, "failed to checksum template snapshot")
	}

	all := m.all(ctx)
	next := 1
	for i := range all {
		if all[i].TemplateID != e.ID {
			continue
		}
		all[i].IsActive = false
		if all[i].Version >= next {
			next = all[i].Version + 1
		}
	}

	v := Version{
		ID:                uuid.NewString(),
		TemplateID:        e.ID,
		Version:           next,
		Snapshot:          snapshot,
		Changes:           changes,
		CreatedBy:         author,
		CreatedAt:         m.clock.Now(),
		ChangeDescription: description,
		IsActive:          true,
		Tags:              append([]string{}, snapshot.Tags...),
		Checksum:          sum,
	}
	all = append(all, v)

	if err := m.persist(ctx, all); err != nil {
		return nil, err
	}
	return &v, nil
}

// Versions lists a template's versions, newest first.
func (m *managerImpl) Versions(ctx context.Context, templateID string) []Version {
	out := []Version{}
	for _, v := range m.all(ctx) {
		if v.TemplateID == templateID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	return out
}

func (m *managerImpl) Version(ctx context.Context, templateID string, version int) (*Version, bool) {
	for _, v := range m.Versions(ctx, templateID) {
		if v.Version == version {
			return &v, true
		}
	}
	return nil, false
}

func (m *managerImpl) ActiveVersion(ctx context.Context, templateID string) (*Version, bool) {
	for _, v := range m.Versions(ctx, templateID) {
		if v.IsActive {
			return &v, true
		}
	}
	return nil, false
}

// Restore records the target snapshot as a new version and returns it for the caller to save.
func (m *managerImpl) Restore(ctx context.Context, templateID string, version int, author string) (*catalog.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	target, ok := m.Version(ctx, templateID, version)
	if !ok {
		return nil, errs.Wrap(errs.ErrVersionNotFound, fmt.Sprintf("%s v%d", templateID, version))
	}

	restored := target.Snapshot.Clone()
	restored.UpdatedAt = m.clock.Now()
	description := fmt.Sprintf("Restaurado para versão %d", version)
	changes := []Change{{
		Field:       "template",
		OldValue:    "current_version",
		NewValue:    fmt.Sprintf("version_%d", version),
		ChangeType:  ChangeModified,
		Description: description,
	}}
	if _, err := m.saveLocked(ctx, restored, changes, description, author); err != nil {
		return nil, err
	}
	return &restored, nil
}

func (m *managerImpl) Compare(ctx context.Context, templateID string, v1, v2 int) (*Comparison, error) {
	a, ok := m.Version(ctx, templateID, v1)
	if !ok {
		return nil, errs.Wrap(errs.ErrVersionNotFound, fmt.Sprintf("%s v%d", templateID, v1))
	}
	b, ok := m.Version(ctx, templateID, v2)
	if !ok {
		return nil, errs.Wrap(errs.ErrVersionNotFound, fmt.Sprintf("%s v%d", templateID, v2))
	}

	diffs := compareSnapshots(a.Snapshot, b.Snapshot)
	return &Comparison{
		TemplateID:  templateID,
		Version1:    v1,
		Version2:    v2,
		Differences: diffs,
		Summary:     summarize(diffs),
	}, nil
}

func (m *managerImpl) ChangeHistory(ctx context.Context, templateID string) []HistoryEntry {
	versions := m.Versions(ctx, templateID)
	out := make([]HistoryEntry, 0, len(versions))
	for _, v := range versions {
		out = append(out, HistoryEntry{
			Version:     v.Version,
			Date:        v.CreatedAt,
			Author:      v.CreatedBy,
			Description: v.ChangeDescription,
			Changes:     v.Changes,
		})
	}
	return out
}

func (m *managerImpl) Stats(ctx context.Context) Stats {
	all := m.all(ctx)

	counts := map[string]int{}
	var order []string
	for _, v := range all {
		if _, ok := counts[v.TemplateID]; !ok {
			order = append(order, v.TemplateID)
		}
		counts[v.TemplateID]++
	}

	st := Stats{
		TotalVersions:         len(all),
		TemplatesWithVersions: len(counts),
	}
	if len(counts) > 0 {
		st.AverageVersionsPerTemplate = float64(len(all)) / float64(len(counts))
	}
	for _, id := range order {
		if st.MostVersionedTemplate == nil || counts[id] > st.MostVersionedTemplate.Versions {
			st.MostVersionedTemplate = &VersionCount{TemplateID: id, Versions: counts[id]}
		}
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if len(all) > recentVersionsLimit {
		all = all[:recentVersionsLimit]
	}
	st.RecentVersions = all
	return st
}

// Cleanup keeps the newest keep versions per template and reports how many were dropped.
func (m *managerImpl) Cleanup(ctx context.Context, keep int) (int, error) {
	if keep < 1 {
		keep = 1
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	all := m.all(ctx)
	byTemplate := map[string][]Version{}
	var order []string
	for _, v := range all {
		if _, ok := byTemplate[v.TemplateID]; !ok {
			order = append(order, v.TemplateID)
		}
		byTemplate[v.TemplateID] = append(byTemplate[v.TemplateID], v)
	}

	kept := make([]Version, 0, len(all))
	for _, id := range order {
		vs := byTemplate[id]
		sort.Slice(vs, func(i, j int) bool { return vs[i].Version > vs[j].Version })
		if len(vs) > keep {
			vs = vs[:keep]
		}
		kept = append(kept, vs...)
	}

	removed := len(all) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := m.persist(ctx, kept); err != nil {
		return 0, err
	}
	m.logger.Info("template versions cleaned up", "removed", removed, "keep", keep)
	return removed, nil
}

// Export returns every version of templateID, or all versions when templateID is empty.
func (m *managerImpl) Export(ctx context.Context, templateID string) (*ExportDocument, error) {
	doc := ExportDocument{
		ExportedAt: m.clock.Now(),
		TemplateID: exportAllTemplates,
		Version:    exportFormatVersion,
	}
	if templateID == "" {
		doc.Versions = m.all(ctx)
	} else {
		doc.TemplateID = templateID
		doc.Versions = m.Versions(ctx, templateID)
	}
	return &doc, nil
}

// Import merges an exported document. The whole payload is validated before
// anything is written; an imported version replaces a stored one with the same
// template and number.
func (m *managerImpl) Import(ctx context.Context, data []byte) (int, error) {
	var doc ExportDocument
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return 0, errs.Wrap(errs.ErrInvalidImport, err.Error())
	}
	if err := validateDocument(doc); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	type key struct {
		templateID string
		version    int
	}
	incoming := map[key]Version{}
	for _, v := range doc.Versions {
		incoming[key{v.TemplateID, v.Version}] = v
	}

	merged := make([]Version, 0, len(doc.Versions))
	for _, v := range m.all(ctx) {
		if _, replaced := incoming[key{v.TemplateID, v.Version}]; !replaced {
			merged = append(merged, v)
		}
	}
	merged = append(merged, doc.Versions...)
	normalizeActive(merged)

	if err := m.persist(ctx, merged); err != nil {
		return 0, err
	}
	return len(doc.Versions), nil
}

func validateDocument(doc ExportDocument) error {
	if doc.Version != exportFormatVersion {
		return errs.Wrap(errs.ErrInvalidImport, "unsupported export version "+doc.Version)
	}
	seen := map[string]struct{}{}
	for i, v := range doc.Versions {
		if v.TemplateID == "" || v.Version < 1 {
			return errs.Wrap(errs.ErrInvalidImport, fmt.Sprintf("version %d: missing template id or number", i))
		}
		if v.Snapshot.ID != v.TemplateID {
			return errs.Wrap(errs.ErrInvalidImport, fmt.Sprintf("version %d: snapshot belongs to %q", i, v.Snapshot.ID))
		}
		k := fmt.Sprintf("%s#%d", v.TemplateID, v.Version)
		if _, dup := seen[k]; dup {
			return errs.Wrap(errs.ErrInvalidImport, "duplicate version "+k)
		}
		seen[k] = struct{}{}
		if v.Checksum != "" {
			sum, err := Checksum(v.Snapshot)
			if err != nil || sum != v.Checksum {
				return errs.Wrap(errs.ErrInvalidImport, "checksum mismatch for "+k)
			}
		}
	}
	return nil
}

// normalizeActive leaves only the highest version of each template active.
func normalizeActive(all []Version) {
	latest := map[string]int{}
	for _, v := range all {
		if v.Version > latest[v.TemplateID] {
			latest[v.TemplateID] = v.Version
		}
	}
	for i := range all {
		all[i].IsActive = all[i].Version == latest[all[i].TemplateID]
	}
}
