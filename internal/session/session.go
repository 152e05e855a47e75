// Package session owns the current filter criteria and veteran profile for
// one user session. It is the only component that replaces them, and every
// replacement persists the new value and re-derives the full result sets
// from the catalog. All operations are synchronous and sequential.
package session

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/vetnav/internal/benefits"
	"github.com/spigell/vetnav/internal/filtering"
	"github.com/spigell/vetnav/internal/recommend"
)

// Manager holds the session state and the derived subsets.
type Manager struct {
	catalog *benefits.Benefits
	store   Store
	logger  *zap.Logger

	criteria filtering.Criteria
	profile  *recommend.Profile

	filtered    *benefits.Benefits
	recommended *benefits.Benefits
}

// New restores any persisted criteria and profile from the store (absence
// means defaults) and computes the derived subsets. A persisted blob that
// no longer parses fails the session up front rather than surfacing as
// wrong results later.
func New(catalog *benefits.Benefits, store Store, logger *zap.Logger) (*Manager, error) {
	m := &Manager{
		catalog:     catalog,
		store:       store,
		logger:      logger,
		recommended: &benefits.Benefits{},
	}

	raw, ok, err := store.Get(FiltersKey)
	if err != nil {
		return nil, fmt.Errorf("restoring filters: %w", err)
	}
	if ok {
		if err := json.Unmarshal(raw, &m.criteria); err != nil {
			return nil, fmt.Errorf("persisted filters are malformed: %w", err)
		}
	}

	raw, ok, err = store.Get(ProfileKey)
	if err != nil {
		return nil, fmt.Errorf("restoring profile: %w", err)
	}
	if ok {
		var profile recommend.Profile
		if err := json.Unmarshal(raw, &profile); err != nil {
			return nil, fmt.Errorf("persisted profile is malformed: %w", err)
		}
		m.profile = &profile
	}

	m.recompute()
	return m, nil
}

// SetFilters replaces the criteria wholesale, persists them, and
// recomputes the filtered subset.
func (m *Manager) SetFilters(criteria filtering.Criteria) error {
	raw, err := json.Marshal(criteria)
	if err != nil {
		return fmt.Errorf("encoding filters: %w", err)
	}
	if err := m.store.Set(FiltersKey, raw); err != nil {
		return err
	}

	m.criteria = criteria
	m.filtered = filtering.Run(m.logger, filtering.Steps(m.criteria), m.catalog)
	return nil
}

// SetProfile replaces the profile wholesale, persists it, and recomputes
// the recommended subset.
func (m *Manager) SetProfile(profile *recommend.Profile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := m.store.Set(ProfileKey, raw); err != nil {
		return err
	}

	m.profile = profile
	m.recommended = recommend.Run(m.logger, m.catalog, m.profile)
	return nil
}

// ClearFilters resets the criteria to empty and removes the persisted copy.
func (m *Manager) ClearFilters() error {
	if err := m.store.Remove(FiltersKey); err != nil {
		return err
	}

	m.criteria = filtering.Criteria{}
	m.filtered = filtering.Apply(m.catalog, m.criteria)
	return nil
}

// recompute re-derives both subsets from the full catalog.
func (m *Manager) recompute() {
	m.filtered = filtering.Run(m.logger, filtering.Steps(m.criteria), m.catalog)
	if m.profile != nil {
		m.recommended = recommend.Run(m.logger, m.catalog, m.profile)
	}
}

// Criteria returns the current filter criteria.
func (m *Manager) Criteria() filtering.Criteria { return m.criteria }

// Profile returns the current profile, or nil when none was submitted.
func (m *Manager) Profile() *recommend.Profile { return m.profile }

// Filtered returns the catalog subset matching the current criteria.
func (m *Manager) Filtered() *benefits.Benefits { return m.filtered }

// Recommended returns the catalog subset matching the current profile.
// Empty until a profile is submitted.
func (m *Manager) Recommended() *benefits.Benefits { return m.recommended }
