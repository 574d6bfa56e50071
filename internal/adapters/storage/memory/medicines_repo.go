package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"med-reminder/internal/domain/medicines"

	"github.com/google/uuid"
)

// medicineRepo reemplaza al backend en modo dev (sin BACKEND_URL).
type medicineRepo struct {
	mu      sync.RWMutex
	byID    map[string]medicines.Medicine
	order   []string
	catalog map[string]medicines.CatalogEntry
}

// MedicineRepo implementa tanto la lista del usuario como el catálogo.
type MedicineRepo interface {
	medicines.Repository
	medicines.Catalog
}

func NewMedicineRepo(seed ...medicines.CatalogEntry) MedicineRepo {
	r := &medicineRepo{
		byID:    make(map[string]medicines.Medicine),
		catalog: make(map[string]medicines.CatalogEntry),
	}
	for _, e := range seed {
		if strings.TrimSpace(e.ID) == "" {
			e.ID = uuid.NewString()
		}
		r.catalog[e.ID] = e
	}
	return r
}

func (r *medicineRepo) List(ctx context.Context) ([]medicines.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medicines.Medicine, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *medicineRepo) Add(ctx context.Context, m medicines.Medicine) (medicines.Medicine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.Name) == "" {
		return medicines.Medicine{}, errors.New("medicine name required")
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if _, exists := r.byID[m.ID]; exists {
		return medicines.Medicine{}, errors.New("medicine already exists")
	}
	r.byID[m.ID] = m
	r.order = append(r.order, m.ID)
	return m, nil
}

func (r *medicineRepo) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return medicines.ErrNotFound
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *medicineRepo) ListCatalog(ctx context.Context) ([]medicines.CatalogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medicines.CatalogEntry, 0, len(r.catalog))
	for _, e := range r.catalog {
		out = append(out, e)
	}
	// Orden estable por nombre (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (r *medicineRepo) CreateCatalog(ctx context.Context, e medicines.CatalogEntry) (medicines.CatalogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.Name) == "" {
		return medicines.CatalogEntry{}, errors.New("catalog name required")
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	r.catalog[e.ID] = e
	return e, nil
}

func (r *medicineRepo) DeleteCatalog(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.catalog[id]; !ok {
		return medicines.ErrNotFound
	}
	delete(r.catalog, id)
	return nil
}

// DevCatalog es el catálogo de arranque cuando no hay backend.
func DevCatalog() []medicines.CatalogEntry {
	return []medicines.CatalogEntry{
		{Name: "Aspirin", Category: "analgesic"},
		{Name: "Ibuprofen", Category: "analgesic"},
		{Name: "Paracetamol", Category: "analgesic"},
		{Name: "Amoxicillin", Category: "antibiotic"},
		{Name: "Metformin", Category: "antidiabetic"},
		{Name: "Omeprazole", Category: "antacid"},
		{Name: "Loratadine", Category: "antihistamine"},
		{Name: "Salbutamol", Category: "bronchodilator"},
	}
}
