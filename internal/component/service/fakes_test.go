package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"stockroom/internal/domain"
	apperrors "stockroom/internal/errors"
	"stockroom/internal/infrastructure/mysql"
)

// memStore keeps committed rows in memory. Writes made through a memTx are buffered
// and only become visible on Commit. FindByIDForUpdate takes a per-component lock
// held until the transaction ends.
type memStore struct {
	mu          sync.Mutex
	components  map[int64]domain.Component
	assignments []domain.CheckoutAssignment
	assets      map[int64]domain.Asset
	audit       []domain.AuditEntry
	rowLocks    map[int64]*sync.Mutex
	nextID      int64
	beginErr    error
	clock       time.Time
}

func newMemStore() *memStore {
	return &memStore{
		components: map[int64]domain.Component{},
		assets:     map[int64]domain.Asset{},
		rowLocks:   map[int64]*sync.Mutex{},
		clock:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) rowLock(componentID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.rowLocks[componentID]
	if !ok {
		l = &sync.Mutex{}
		s.rowLocks[componentID] = l
	}
	return l
}

func (s *memStore) addComponent(c domain.Component) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.id()
	c.CreatedAt = s.clock
	c.UpdatedAt = s.clock
	s.components[c.ID] = c
	return c.ID
}

func (s *memStore) addAsset(a domain.Asset) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.id()
	s.assets[a.ID] = a
	return a.ID
}

func (s *memStore) addAssignment(componentID, assetID int64, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments = append(s.assignments, domain.CheckoutAssignment{
		ID:          s.id(),
		ComponentID: componentID,
		AssetID:     assetID,
		UserID:      1,
		AssignedQty: qty,
		CreatedAt:   s.clock,
	})
}

func (s *memStore) assigned(componentID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assignedLocked(componentID)
}

func (s *memStore) assignedLocked(componentID int64) int {
	total := 0
	for _, a := range s.assignments {
		if a.ComponentID == componentID {
			total += a.AssignedQty
		}
	}
	return total
}

func (s *memStore) assignmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.assignments)
}

func (s *memStore) auditEntries() []domain.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AuditEntry(nil), s.audit...)
}

func (s *memStore) component(id int64) (domain.Component, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.components[id]
	return c, ok
}

func (s *memStore) BeginTx(ctx context.Context, opts *sql.TxOptions) (mysql.Tx, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	return &memTx{store: s}, nil
}

type memTx struct {
	store   *memStore
	pending []func()
	locks   []*sync.Mutex
	done    bool
}

func (t *memTx) Commit() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.store.mu.Lock()
	for _, apply := range t.pending {
		apply()
	}
	t.store.mu.Unlock()
	t.finish()
	return nil
}

func (t *memTx) Rollback() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.finish()
	return nil
}

func (t *memTx) finish() {
	t.done = true
	t.pending = nil
	for _, l := range t.locks {
		l.Unlock()
	}
	t.locks = nil
}

func (t *memTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return nil, errors.New("memTx does not run SQL")
}

func (t *memTx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, errors.New("memTx does not run SQL")
}

func (t *memTx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return nil
}

func asMemTx(q mysql.Querier) *memTx {
	tx, ok := q.(*memTx)
	if !ok {
		panic(fmt.Sprintf("unexpected querier %T", q))
	}
	return tx
}

func notFound(id int64) error {
	return apperrors.NewResourceNotFoundError("component", fmt.Sprintf("component with id %d not found", id))
}

type memComponents struct {
	s *memStore
}

func (r memComponents) Create(ctx context.Context, c *domain.Component) (int64, error) {
	return r.s.addComponent(*c), nil
}

func (r memComponents) FindByID(ctx context.Context, id int64) (*domain.Component, error) {
	c, ok := r.s.component(id)
	if !ok {
		return nil, notFound(id)
	}
	return &c, nil
}

func (r memComponents) FindByIDForUpdate(ctx context.Context, q mysql.Querier, id int64) (*domain.Component, error) {
	tx := asMemTx(q)
	lock := r.s.rowLock(id)
	lock.Lock()
	tx.locks = append(tx.locks, lock)
	return r.FindByID(ctx, id)
}

func (r memComponents) Update(ctx context.Context, q mysql.Querier, c *domain.Component) error {
	tx := asMemTx(q)
	next := *c
	tx.pending = append(tx.pending, func() {
		stored := r.s.components[next.ID]
		next.UserID = stored.UserID
		next.CreatedAt = stored.CreatedAt
		next.UpdatedAt = r.s.clock.Add(time.Minute)
		r.s.components[next.ID] = next
	})
	return nil
}

func (r memComponents) Delete(ctx context.Context, q mysql.Querier, id int64) error {
	tx := asMemTx(q)
	if _, ok := r.s.component(id); !ok {
		return notFound(id)
	}
	tx.pending = append(tx.pending, func() {
		delete(r.s.components, id)
	})
	return nil
}

func (r memComponents) List(ctx context.Context, filter domain.ComponentFilter) ([]domain.ComponentSummary, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []domain.ComponentSummary
	for _, c := range r.s.components {
		if filter.CompanyID != nil && (c.CompanyID == nil || *c.CompanyID != *filter.CompanyID) {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, domain.ComponentSummary{Component: c, CheckedOut: r.s.assignedLocked(c.ID)})
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Component.ID < matched[j].Component.ID })

	total := len(matched)
	start := min(filter.Offset, total)
	end := min(start+filter.Limit, total)
	return append([]domain.ComponentSummary{}, matched[start:end]...), total, nil
}

type memAssignments struct {
	s *memStore
}

func (r memAssignments) Insert(ctx context.Context, q mysql.Querier, a *domain.CheckoutAssignment) (int64, error) {
	tx := asMemTx(q)
	r.s.mu.Lock()
	id := r.s.id()
	r.s.mu.Unlock()

	row := *a
	row.ID = id
	tx.pending = append(tx.pending, func() {
		r.s.assignments = append(r.s.assignments, row)
	})
	return id, nil
}

func (r memAssignments) SumAssignedQty(ctx context.Context, componentID int64) (int, error) {
	return r.s.assigned(componentID), nil
}

func (r memAssignments) SumAssignedQtyForUpdate(ctx context.Context, q mysql.Querier, componentID int64) (int, error) {
	asMemTx(q)
	return r.s.assigned(componentID), nil
}

func (r memAssignments) CountByComponent(ctx context.Context, q mysql.Querier, componentID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for _, a := range r.s.assignments {
		if a.ComponentID == componentID {
			count++
		}
	}
	return count, nil
}

func (r memAssignments) ListWithAssets(ctx context.Context, componentID int64) ([]domain.CheckoutRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := []domain.CheckoutRow{}
	for _, a := range r.s.assignments {
		if a.ComponentID != componentID {
			continue
		}
		rows = append(rows, domain.CheckoutRow{Assignment: a, Asset: r.s.assets[a.AssetID]})
	}
	return rows, nil
}

type memAssets struct {
	s *memStore
}

func (r memAssets) FindByID(ctx context.Context, id int64) (*domain.Asset, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.assets[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("asset", fmt.Sprintf("asset with id %d does not exist", id))
	}
	return &a, nil
}

type memAudit struct {
	s *memStore
}

func (r memAudit) Insert(ctx context.Context, q mysql.Querier, e *domain.AuditEntry) (int64, error) {
	tx := asMemTx(q)
	r.s.mu.Lock()
	id := r.s.id()
	r.s.mu.Unlock()

	entry := *e
	entry.ID = id
	tx.pending = append(tx.pending, func() {
		r.s.audit = append(r.s.audit, entry)
	})
	return id, nil
}

func (r memAudit) ListForItem(ctx context.Context, itemType string, itemID int64) ([]domain.AuditEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.AuditEntry
	for i := len(r.s.audit) - 1; i >= 0; i-- {
		if e := r.s.audit[i]; e.ItemType == itemType && e.ItemID == itemID {
			out = append(out, e)
		}
	}
	return out, nil
}

type recordingMetrics struct {
	mu    sync.Mutex
	calls []string
}

func (m *recordingMetrics) IncOperation(operation, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, operation+":"+result)
}
