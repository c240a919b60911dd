package migrations

import (
	"gorm.io/gorm"
)

type v8TypeBus struct {
	BusCompanyID *uint        `gorm:"index:idx_type_buses_bus_company_id"`
	BusCompany   v1BusCompany `gorm:"constraint:OnDelete:CASCADE"`
}

func (v8TypeBus) TableName() string { return "type_buses" }

func init() {
	Register(&Migration{
		Version: "202404150001",
		Name:    "add_bus_company_to_type_buses",
		Up: func(tx *gorm.DB) error {
			return addCascadeColumn(tx, &v8TypeBus{}, "type_buses", "BusCompanyID", "BusCompany", "bus_company_id", "bus_companies")
		},
		Down: func(tx *gorm.DB) error {
			return dropCascadeColumn(tx, &v8TypeBus{}, "BusCompanyID", "BusCompany", "idx_type_buses_bus_company_id")
		},
	})
}

// addCascadeColumn adds a nullable foreign key column with ON DELETE
// CASCADE and an index. SQLite cannot add constraints to an existing
// table, so there the reference is declared inline on the column.
func addCascadeColumn(tx *gorm.DB, model any, table, field, relation, column, refTable string) error {
	m := tx.Migrator()
	if isSQLite(tx) {
		if err := tx.Exec("ALTER TABLE " + table + " ADD COLUMN " + column +
			" integer REFERENCES " + refTable + "(id) ON DELETE CASCADE").Error; err != nil {
			return err
		}
	} else {
		if err := m.AddColumn(model, field); err != nil {
			return err
		}
		if err := m.CreateConstraint(model, relation); err != nil {
			return err
		}
	}
	return m.CreateIndex(model, field)
}

func dropCascadeColumn(tx *gorm.DB, model any, field, relation, index string) error {
	m := tx.Migrator()
	if m.HasIndex(model, index) {
		if err := m.DropIndex(model, index); err != nil {
			return err
		}
	}
	if !isSQLite(tx) && m.HasConstraint(model, relation) {
		if err := m.DropConstraint(model, relation); err != nil {
			return err
		}
	}
	return m.DropColumn(model, field)
}
