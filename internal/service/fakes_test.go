package service

import (
	"context"
	"encoding/json"
	"okr_backend/internal/model"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"
)

type memCycles struct {
	mu    sync.Mutex
	items map[uint]*model.Cycle
	// err 非空时 FindByID 直接返回，模拟数据库故障
	err error
}

func newMemCycles() *memCycles { return &memCycles{items: map[uint]*model.Cycle{}} }

func (m *memCycles) Create(c *model.Cycle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = uint(len(m.items) + 1)
	cp := *c
	m.items[c.ID] = &cp
	return nil
}

func (m *memCycles) FindByID(id uint) (*model.Cycle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCycles) FindAll() ([]model.Cycle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Cycle, 0, len(m.items))
	for _, c := range m.items {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.After(out[j].StartAt) })
	return out, nil
}

type memObjectives struct {
	mu    sync.Mutex
	items map[uint]*model.Objective
}

func newMemObjectives() *memObjectives { return &memObjectives{items: map[uint]*model.Objective{}} }

func (m *memObjectives) Create(o *model.Objective) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.ID = uint(len(m.items) + 1)
	cp := *o
	m.items[o.ID] = &cp
	return nil
}

func (m *memObjectives) FindByID(id uint) (*model.Objective, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memObjectives) FindByOwnerID(ownerID, cycleID uint) ([]model.Objective, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Objective
	for _, o := range m.items {
		if o.OwnerID == ownerID && (cycleID == 0 || o.CycleID == cycleID) {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memKeyResults struct {
	mu     sync.Mutex
	nextID uint
	items  map[uint]*model.KeyResult
}

func newMemKeyResults() *memKeyResults { return &memKeyResults{items: map[uint]*model.KeyResult{}} }

func (m *memKeyResults) Create(kr *model.KeyResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	kr.ID = m.nextID
	cp := *kr
	m.items[kr.ID] = &cp
	return nil
}

func (m *memKeyResults) FindByID(id uint) (*model.KeyResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kr, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *kr
	return &cp, nil
}

func (m *memKeyResults) FindByObjectiveID(objectiveID uint) ([]model.KeyResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.KeyResult
	for _, kr := range m.items {
		if kr.ObjectiveID == objectiveID {
			out = append(out, *kr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memKeyResults) UpdateLifecycle(id uint, lifecycle model.KeyResultLifecycle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id].Lifecycle = lifecycle
	return nil
}

func (m *memKeyResults) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

type memCheckIns struct {
	mu    sync.Mutex
	krs   *memKeyResults
	items []model.CheckIn
}

func (m *memCheckIns) CreateAndApply(c *model.CheckIn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = uint(len(m.items) + 1)
	m.items = append(m.items, *c)

	m.krs.mu.Lock()
	defer m.krs.mu.Unlock()
	kr := m.krs.items[c.KeyResultID]
	if kr.LastCheckInAt == nil || !kr.LastCheckInAt.After(c.CheckedInAt) {
		at := c.CheckedInAt
		kr.Current = c.Value
		kr.LastCheckInAt = &at
	}
	return nil
}

func (m *memCheckIns) FindByKeyResultID(keyResultID uint, limit int) ([]model.CheckIn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.CheckIn
	for _, c := range m.items {
		if c.KeyResultID == keyResultID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckedInAt.After(out[j].CheckedInAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// memCache 以 JSON 保存，和 Redis 的序列化行为一致
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string, dst interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *memCache) Set(_ context.Context, key string, v interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = b
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}
