package migrations

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"busbooking/internal/utils"

	"gorm.io/gorm"
)

// Migration is one versioned schema change.
type Migration struct {
	Version string // sortable, e.g. 202401010001
	Name    string
	Up      func(tx *gorm.DB) error
	Down    func(tx *gorm.DB) error
}

// Record is a row of schema_migrations.
type Record struct {
	Version   string    `gorm:"primaryKey;size:32"`
	Name      string    `gorm:"size:255;not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (Record) TableName() string { return "schema_migrations" }

// Status describes one known migration.
type Status struct {
	Version   string     `json:"version"`
	Name      string     `json:"name"`
	Applied   bool       `json:"applied"`
	AppliedAt *time.Time `json:"appliedAt,omitempty"`
}

var (
	registry   []*Migration
	registryMu sync.RWMutex
)

// Register adds a migration to the process-wide registry.
func Register(m *Migration) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, m)
}

// Registered returns the registered migrations sorted by version.
func Registered() []*Migration {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]*Migration, len(registry))
	copy(out, registry)
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out
}

// Migrator applies and rolls back migrations against one database.
type Migrator struct {
	db         *gorm.DB
	migrations []*Migration
}

func NewMigrator(db *gorm.DB) *Migrator {
	return &Migrator{db: db, migrations: Registered()}
}

func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	return m.db.WithContext(ctx).AutoMigrate(&Record{})
}

func (m *Migrator) applied(ctx context.Context) (map[string]Record, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return nil, err
	}
	var records []Record
	if err := m.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	out := make(map[string]Record, len(records))
	for _, r := range records {
		out[r.Version] = r
	}
	return out, nil
}

// Up applies every pending migration, each in its own transaction.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	applied, err := m.applied(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, mig := range m.migrations {
		if _, ok := applied[mig.Version]; ok {
			continue
		}
		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := mig.Up(tx); err != nil {
				return err
			}
			return tx.Create(&Record{Version: mig.Version, Name: mig.Name, AppliedAt: time.Now().UTC()}).Error
		})
		if err != nil {
			return count, fmt.Errorf("migration %s_%s: %w", mig.Version, mig.Name, err)
		}
		utils.LogEvent("", "migrations", "up", fmt.Sprintf("applied %s_%s", mig.Version, mig.Name))
		count++
	}
	return count, nil
}

// Down rolls back the highest applied version. It returns false when
// nothing was applied.
func (m *Migrator) Down(ctx context.Context) (bool, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return false, err
	}
	var last Record
	res := m.db.WithContext(ctx).Order("version DESC").Limit(1).Find(&last)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	var target *Migration
	for _, mig := range m.migrations {
		if mig.Version == last.Version {
			target = mig
			break
		}
	}
	if target == nil {
		return false, fmt.Errorf("migration %s is applied but not registered", last.Version)
	}

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if target.Down != nil {
			if err := target.Down(tx); err != nil {
				return err
			}
		}
		return tx.Delete(&Record{}, "version = ?", last.Version).Error
	})
	if err != nil {
		return false, fmt.Errorf("rollback %s_%s: %w", target.Version, target.Name, err)
	}
	utils.LogEvent("", "migrations", "down", fmt.Sprintf("rolled back %s_%s", target.Version, target.Name))
	return true, nil
}

func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Status, 0, len(m.migrations))
	for _, mig := range m.migrations {
		st := Status{Version: mig.Version, Name: mig.Name}
		if r, ok := applied[mig.Version]; ok {
			at := r.AppliedAt
			st.Applied = true
			st.AppliedAt = &at
		}
		out = append(out, st)
	}
	return out, nil
}

func isSQLite(tx *gorm.DB) bool {
	return tx.Dialector.Name() == "sqlite"
}
